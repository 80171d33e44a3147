package ociapi

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var (
	// ErrNotFound is returned when the requested resource is not found.
	//
	// A *ServiceError with a 404 status matches ErrNotFound with errors.Is.
	ErrNotFound = errors.New("resource not found")

	// ErrNotPollable is returned by Response.Poll for responses that were not
	// produced by a GET request.
	ErrNotPollable = errors.New("response has no polling handle")
)

// ServiceError is a non-2xx answer from the service.
type ServiceError struct {
	StatusCode   int
	Code         string
	Message      string
	OpcRequestID string
	Method       string
	URL          string
}

func (e *ServiceError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("request %s %s failed: %d %s: %s (opc-request-id: %s)", e.Method, e.URL, e.StatusCode, e.Code, msg, e.OpcRequestID)
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func newServiceError(resp *http.Response, body []byte) *ServiceError {
	e := &ServiceError{
		StatusCode:   resp.StatusCode,
		OpcRequestID: resp.Header.Get(HeaderOpcRequestID),
	}
	if resp.Request != nil {
		e.Method = resp.Request.Method
		e.URL = resp.Request.URL.String()
	}
	if gjson.ValidBytes(body) {
		e.Code = gjson.GetBytes(body, "code").String()
		e.Message = gjson.GetBytes(body, "message").String()
	} else {
		e.Message = string(body)
	}
	return e
}
