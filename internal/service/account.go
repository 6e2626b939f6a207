// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pairdojo/pairdojo/internal/auth"
	"github.com/pairdojo/pairdojo/internal/metrics"
	"github.com/pairdojo/pairdojo/internal/model"
	"github.com/pairdojo/pairdojo/internal/store"
)

// Account service errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
)

// AccountService handles signup, login and account lookup.
type AccountService struct {
	directory *store.Directory
	tokens    *auth.TokenManager
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(directory *store.Directory, tokens *auth.TokenManager, recorder metrics.Recorder, logger *slog.Logger) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		directory: directory,
		tokens:    tokens,
		metrics:   recorder,
		logger:    logger.With("component", "service.account"),
	}
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Email       string
	DisplayName string
	Password    string
}

// Signup registers a new account and returns it with a session token.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*model.Account, string, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	account, err := s.directory.CreateAccount(input.Email, input.DisplayName, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create account: %w", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncSignup()
	s.logger.Info("account_created", "account_id", account.ID)

	return account, token, nil
}

// Login authenticates by email and password and returns the account
// with a session token. Failures collapse into ErrInvalidCredentials
// to prevent enumeration.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.Account, string, error) {
	account, err := s.directory.GetByEmail(email)
	if err != nil {
		s.metrics.IncLogin("failed")
		return nil, "", ErrInvalidCredentials
	}

	match, err := auth.VerifyPassword(password, account.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLogin("failed")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLogin("success")
	return account, token, nil
}

// GetAccount retrieves an account by id.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.directory.GetByID(id)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}
