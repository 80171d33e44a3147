package ociapi

import (
	"context"
	"net/http"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const (
	HeaderOpcRequestID     = "opc-request-id"
	HeaderOpcRetryToken    = "opc-retry-token"
	HeaderOpcWorkRequestID = "opc-work-request-id"
	HeaderETag             = "etag"
	HeaderIfMatch          = "if-match"
)

// PollFunc re-fetches the resource a response describes.
type PollFunc func(ctx context.Context) (*Response, error)

// Response is the decoded result of one API call.
type Response struct {
	StatusCode       int
	Header           http.Header
	OpcRequestID     string
	OpcWorkRequestID string
	ETag             string

	// Data holds the decoded body for single object responses.
	Data *model.Instance
	// Items holds the decoded body for array responses.
	Items []*model.Instance
	// RawBody is the undecoded response body.
	RawBody []byte

	poll PollFunc
}

// NewResponse returns a response carrying data whose polling handle is poll.
// Generated clients build responses through Invoke; this is for callers that
// adapt other transports.
func NewResponse(data *model.Instance, poll PollFunc) *Response {
	return &Response{StatusCode: http.StatusOK, Header: http.Header{}, Data: data, poll: poll}
}

// Poll re-issues the request that produced r.
func (r *Response) Poll(ctx context.Context) (*Response, error) {
	if r == nil || r.poll == nil {
		return nil, ErrNotPollable
	}
	return r.poll(ctx)
}

// Pollable reports whether Poll can be used.
func (r *Response) Pollable() bool {
	return r != nil && r.poll != nil
}

// LifecycleState returns the lifecycle_state of the response model, if it has one.
func (r *Response) LifecycleState() (string, bool) {
	if r == nil || r.Data == nil {
		return "", false
	}
	if _, ok := r.Data.Descriptor().Attribute("lifecycle_state"); !ok {
		return "", false
	}
	return r.Data.String("lifecycle_state"), true
}
