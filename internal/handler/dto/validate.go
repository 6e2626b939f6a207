// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Validator instances cache
// struct metadata, so a single instance is reused across requests.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request DTO against its validation tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse represents a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
