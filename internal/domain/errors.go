package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoCredential indicates the provider API key is not configured
	ErrNoCredential = errors.New("model provider credential not configured")
	// ErrUnsupportedFileType indicates an upload with a disallowed extension
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
