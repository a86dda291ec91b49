// Package apperrors carries coded domain errors across package boundaries so
// transports can map them to status codes without string matching.
package apperrors

import "errors"

// Codes raised by the local resolution pipeline.
const (
	CodeCountryRequired   = "country_code_required"
	CodeInvalidDate       = "invalid_date"
	CodeDatasetNotFound   = "dataset_not_found"
	CodeDateNotFound      = "date_not_found"
	CodeDatasetReadFailed = "dataset_read_failed"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return Code(err) == code
}

// Code returns the code of the first AppError in err's chain, or "".
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
