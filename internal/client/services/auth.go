package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

var ErrMissingCredentials = errors.New("email and password are required")

// AuthService exchanges credentials for a session token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.LoginResponse, error)
}

type authService struct {
	api Transport
}

func NewAuthService(api Transport) AuthService {
	return &authService{api: api}
}

// Login posts the credentials and returns the issued token and user. The
// backend's message (e.g. "Invalid credentials") is preserved in the error.
func (s *authService) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.LoginResponse{}, ErrMissingCredentials
	}

	var resp models.LoginResponse
	err := s.api.Post(ctx, "/auth/login", models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return models.LoginResponse{}, err
	}
	return resp, nil
}
