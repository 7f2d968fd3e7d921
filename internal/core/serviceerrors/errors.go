package serviceerrors

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindInsufficientStock
	KindUnauthorized
	KindStorage
)

var kindNames = map[ErrorKind]string{
	KindNotFound:            "not_found",
	KindConflict:            "conflict",
	KindUnprocessableEntity: "unprocessable_entity",
	KindInvalidRequest:      "invalid_request",
	KindInsufficientStock:   "insufficient_stock",
	KindUnauthorized:        "unauthorized",
	KindStorage:             "storage",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

// NewInvalidRequestError reports malformed or out-of-range input.
func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

func NewInsufficientStockError(id string, available, requested int) *ServiceError {
	return &ServiceError{
		Kind:    KindInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for product %s: available %d, requested %d", id, available, requested),
	}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthorized, Message: message}
}

// NewStorageError wraps a persistence failure. Only the message is meant
// for callers; err is kept for logs.
func NewStorageError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindStorage, Message: message, Err: err}
}
