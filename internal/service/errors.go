package service

import "fmt"

// ErrorKind classifies a rejected request
type ErrorKind string

const (
	InvalidParameter  ErrorKind = "InvalidParameter"
	InvalidType       ErrorKind = "InvalidType"
	MissingField      ErrorKind = "MissingField"
	InvalidIdentifier ErrorKind = "InvalidIdentifier"
)

// ValidationError is returned for input that is rejected before the store is called.
// Message is safe to show to the client.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newValidationError(kind ErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// Client-facing messages
const (
	msgInvalidID       = "Invalid product ID"
	msgRequiredFields  = "Name, price and category are required"
	msgPriceNotNumber  = "Price must be a non-negative number"
	msgNothingToUpdate = "Provide at least one field to update: name, price or category"
	msgEmptyName       = "Name cannot be empty"
	msgEmptyCategory   = "Category cannot be empty"
	msgMinPrice        = "minPrice must be a number"
	msgSort            = "sort must be 'price' or '-price'"
	msgFields          = "fields must be a comma separated list of field names"
)
