package models

import "errors"

var (
	// ErrUnsupportedFormat is returned when a file extension maps to no known loader
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidDocument is returned when a file is not a valid document of its claimed format
	ErrInvalidDocument = errors.New("invalid document")

	// ErrFileTooLarge is returned when a document exceeds the configured size limit
	ErrFileTooLarge = errors.New("file exceeds maximum size")
)
