package dto

import (
	"time"

	"github.com/pairdojo/pairdojo/internal/model"
)

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse is returned from signup and login.
type AuthResponse struct {
	User        AccountResponse `json:"user"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
}

// ToAccountResponse converts an Account model to AccountResponse DTO.
func ToAccountResponse(account *model.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		CreatedAt:   account.CreatedAt,
	}
}

// ToAuthResponse builds the signup/login response envelope.
func ToAuthResponse(account *model.Account, token string) *AuthResponse {
	return &AuthResponse{
		User:        ToAccountResponse(account),
		AccessToken: token,
		TokenType:   "bearer",
	}
}
