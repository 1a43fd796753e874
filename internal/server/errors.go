// Package server provides the HTTP API for the resume extractor.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-extractor/internal/document"
	"github.com/jonathan/resume-extractor/internal/pipeline"
)

// ErrInvalidCredentials indicates a failed admin login.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid credentials"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		unsupported *document.UnsupportedFormatError
		legacy      *document.LegacyFormatError
		parse       *document.ParseError
		persistence *pipeline.PersistenceError
	)
	switch {
	case errors.As(err, &unsupported), errors.As(err, &legacy):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &parse):
		return http.StatusUnprocessableEntity
	case errors.As(err, &persistence):
		return http.StatusBadGateway
	default:
		if _, ok := err.(*ErrInvalidCredentials); ok {
			return http.StatusUnauthorized
		}
		return http.StatusInternalServerError
	}
}
