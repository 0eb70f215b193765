package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/auth"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/repository"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-tracker/pkg/validator"
)

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

type LoginParams struct {
	// Identifier is either a username or an email address.
	Identifier string
	Password   string
}

type LoginResult struct {
	Token string
	User  model.User
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (model.User, error)
	Login(ctx context.Context, params LoginParams) (LoginResult, error)
	GetProfile(ctx context.Context, id auth.Identity) (model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
	validator *validator.DefaultValidator
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	validator *validator.DefaultValidator,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
	}
}

func (s *authService) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.TrimSpace(params.Email)

	if res := s.validator.ValidateRegistration(validator.Registration{
		Username: params.Username,
		Email:    params.Email,
		Password: params.Password,
	}); !res.IsValid {
		return model.User{}, validationError(res)
	}

	exists, err := s.userRepo.UserExists(ctx, params.Username, params.Email)
	if err != nil {
		return model.User{}, fmt.Errorf("user repository user exists: %w", err)
	}
	if exists {
		return model.User{}, apperr.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, repository.CreateUserParams{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// Lost a race with a concurrent registration.
		if db.IsUniqueViolation(err) {
			return model.User{}, apperr.ErrUserAlreadyExists.WrapParent(err)
		}
		return model.User{}, fmt.Errorf("user repository create user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, params LoginParams) (LoginResult, error) {
	identifier := strings.TrimSpace(params.Identifier)
	if identifier == "" || params.Password == "" {
		return LoginResult{}, apperr.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if db.IsNoRows(err) {
			return LoginResult{}, apperr.ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("user repository get user by identifier: %w", err)
	}

	if !s.hasher.Verify(params.Password, user.PasswordHash) {
		return LoginResult{}, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{Token: token, User: user}, nil
}

func (s *authService) GetProfile(ctx context.Context, id auth.Identity) (model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return model.User{}, apperr.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("user repository get user by id: %w", err)
	}

	return user, nil
}

func validationError(res validator.Result) error {
	return apperr.ValidationErr.
		WithMsg(strings.Join(res.Errors, ", ")).
		WithDetails(res.Errors...)
}
