package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// identifier accepts the older {username} and {email} request shapes too.
func (req loginRequest) identifier() string {
	switch {
	case req.Identifier != "":
		return req.Identifier
	case req.Username != "":
		return req.Username
	default:
		return req.Email
	}
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type profileResponse struct {
	User userResponse `json:"user"`
}

type authHandler struct {
	*Service
	authSvc service.AuthService
}

func newAuthHandler(s *Service, authSvc service.AuthService) *authHandler {
	return &authHandler{
		Service: s,
		authSvc: authSvc,
	}
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	user, err := h.authSvc.Register(r.Context(), service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return fmt.Errorf("auth service register: %w", err)
	}

	h.writeJSON(w, r, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
	return nil
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	res, err := h.authSvc.Login(r.Context(), service.LoginParams{
		Identifier: req.identifier(),
		Password:   req.Password,
	})
	if err != nil {
		return fmt.Errorf("auth service login: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    toUserResponse(res.User),
	})
	return nil
}

func (h *authHandler) GetProfile(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}

	user, err := h.authSvc.GetProfile(r.Context(), id)
	if err != nil {
		return fmt.Errorf("auth service get profile: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, profileResponse{User: toUserResponse(user)})
	return nil
}
