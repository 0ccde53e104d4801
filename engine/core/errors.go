package core

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateFormat   = errors.New("format already registered for extension")
	ErrUnknownFormat     = errors.New("no format registered for extension")
	ErrExtensionMismatch = errors.New("resource key extension does not match format")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// FormatError is returned by a format when raw bytes cannot be decoded
// into intermediate data.
//
// The underlying decoder error (if any) can be accessed via errors.Unwrap.
type FormatError struct {
	// Format is the extension of the format that failed, e.g. "png".
	Format string
	Reason string
	cause  error
}

func NewFormatError(format, reason string, cause error) *FormatError {
	return &FormatError{Format: format, Reason: reason, cause: cause}
}

func (e *FormatError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("format %s: %s: %v", e.Format, e.Reason, e.cause)
	}
	return fmt.Sprintf("format %s: %s", e.Format, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.cause }

// AssetError is returned by an asset kind when intermediate data cannot be
// turned into the finished resource.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type AssetError struct {
	// Category is the kind tag, e.g. "mesh".
	Category string
	Reason   string
	cause    error
}

func NewAssetError(category, reason string, cause error) *AssetError {
	return &AssetError{Category: category, Reason: reason, cause: cause}
}

func (e *AssetError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s asset: %s: %v", e.Category, e.Reason, e.cause)
	}
	return fmt.Sprintf("%s asset: %s", e.Category, e.Reason)
}

func (e *AssetError) Unwrap() error { return e.cause }
