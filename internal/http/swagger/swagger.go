// Package swagger serves the inventory-tracker API contract and a Swagger UI
// page that renders it.
package swagger

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/inventory-tracker/api-contract"
)

const (
	// DocsPath serves the inventory-tracker Swagger UI page.
	DocsPath = "/docs"

	// ContractPath serves the embedded openapi.yml the page loads.
	ContractPath = "/docs/openapi.yml"

	pageTitle     = "Inventory Tracker API"
	swaggerUIDist = "https://unpkg.com/swagger-ui-dist@5.29.3"
)

// Register mounts the inventory-tracker docs page and its contract on r.
func Register(r chi.Router) {
	page := []byte(docsPage(ContractPath))
	contract := apicontract.GetSpecBytes()

	r.Get(DocsPath, serveBytes("text/html; charset=utf-8", page))
	r.Get(ContractPath, serveBytes("application/yaml", contract))
}

func serveBytes(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(body)
	}
}

// docsPage renders the Swagger UI shell pointed at contractURL.
func docsPage(contractURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <meta name="description" content="%[1]s documentation" />
  <title>%[1]s</title>
  <link rel="stylesheet" href="%[2]s/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="%[2]s/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%[3]s',
      dom_id: '#swagger-ui',
      deepLinking: true,
      displayRequestDuration: true,
      persistAuthorization: true,
    });
  };
</script>
</body>
</html>
`, pageTitle, swaggerUIDist, contractURL)
}
