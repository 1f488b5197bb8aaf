package errors

import "net/http"

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string { return e.Message }

func BadRequest(msg string) *HTTPError { return &HTTPError{StatusCode: http.StatusBadRequest, Message: msg} }

func Unauthorized(msg string) *HTTPError { return &HTTPError{StatusCode: http.StatusUnauthorized, Message: msg} }

func BadGateway(msg string) *HTTPError { return &HTTPError{StatusCode: http.StatusBadGateway, Message: msg} }

func Internal(msg string) *HTTPError { return &HTTPError{StatusCode: http.StatusInternalServerError, Message: msg} }
