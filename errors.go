package unsplash

import (
	"errors"
	"fmt"
)

// Stages of a call at which an ApiError can happen.
const (
	StageBeforeRequest = "before-request"
	StageRequest       = "request"
	StageAfterRequest  = "after-request"
)

// Types of ApiError.
const (
	TypeRequestPrep = "request-prep"
	TypeIO          = "io"
	TypeHTTPStatus  = "not-ok-http-status"
	TypeJSONParse   = "json"
	TypeUnexpected  = "unexpected-shape"
)

// ApiError describes a failed call to the Unsplash API.
//
// Transport failures have Stage StageRequest and Type TypeIO. A non-2xx
// response has Type TypeHTTPStatus and carries the status code and raw body.
// A body that is not valid JSON has Type TypeJSONParse.
type ApiError struct {
	Stage      string
	Type       string
	Method     Method
	Path       string
	StatusCode int
	Body       []byte
	SourceErr  error
}

var _ error = &ApiError{}

func (e *ApiError) Error() string {
	var detail string
	if e.SourceErr != nil {
		detail = e.SourceErr.Error()
	} else {
		detail = string(e.Body)
	}
	return fmt.Sprintf(
		"unsplash: %s %s failed during '%s' stage with error type '%s', httpStatus: '%d'; original err: %v",
		e.Method, e.Path, e.Stage, e.Type, e.StatusCode, detail,
	)
}

func (e *ApiError) Unwrap() error {
	return e.SourceErr
}

// IsStatus reports whether err is an ApiError for the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr) && apiErr.Type == TypeHTTPStatus && apiErr.StatusCode == status
}

func unexpectedShape(path, want string, got any) *ApiError {
	return &ApiError{
		Stage:     StageAfterRequest,
		Type:      TypeUnexpected,
		Method:    MethodGet,
		Path:      path,
		SourceErr: fmt.Errorf("expected JSON %s, got %T", want, got),
	}
}
