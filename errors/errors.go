package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	NotFound            = HttpError{http.StatusNotFound, errors.New("not found")}
	BadRequest          = HttpError{http.StatusBadRequest, errors.New("bad request")}
	ConstraintViolation = HttpError{http.StatusUnprocessableEntity, errors.New("constraint violation")}
	InternalServerError = HttpError{http.StatusInternalServerError, errors.New("internal server error")}
)

type HttpError struct {
	Code int
	Err  error
}

func (h HttpError) Unwrap() error {
	return h.Err
}

func (h HttpError) Error() string {
	return h.Err.Error()
}

// Invalid reports a snapshot field that cannot be evaluated.
func Invalid(field string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ConstraintViolation, field, fmt.Sprintf(format, args...))
}
