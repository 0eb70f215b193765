package config

type HTTP struct {
	Port        uint32   `env:"HTTP_PORT" envDefault:"5000"`
	Swagger     bool     `env:"HTTP_SWAGGER" envDefault:"true"`
	CorsOrigins []string `env:"HTTP_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:3001,http://127.0.0.1:3000,https://inventory123321.netlify.app"`
}
