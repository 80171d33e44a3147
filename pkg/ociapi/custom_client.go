package ociapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/oapi-codegen/runtime"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/berops/terraform-provider-oci/pkg/ociapi/model"
)

const (
	UserAgent = "terraform-provider-oci/ociapi"
)

// seems like some services have problems parsing escaped '>' thus don't escape html chars.
var wireJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

var pathParamPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

type HttpClientOption func(*HttpClient)

func WithRetryableHttpClient(retries int) HttpClientOption {
	return func(hc *HttpClient) {
		hc.retries = retries
	}
}

func WithLogger(logger log.FieldLogger) HttpClientOption {
	return func(hc *HttpClient) {
		hc.logger = logger
	}
}

func WithHTTPClient(client *http.Client) HttpClientOption {
	return func(hc *HttpClient) {
		hc.HTTPClient = client
	}
}

func WithUserAgent(agent string) HttpClientOption {
	return func(hc *HttpClient) {
		hc.userAgent = agent
	}
}

type AuthData struct {
	Token string
}

type HttpClient struct {
	HostURL    string
	HTTPClient *http.Client
	auth       AuthData
	retries    int
	userAgent  string
	logger     log.FieldLogger
}

func NewCustom(endpoint, token string, opts ...HttpClientOption) (*HttpClient, error) {
	if endpoint == "" {
		return nil, errors.New("no endpoint specified")
	}

	c := HttpClient{
		HostURL: endpoint,
		auth:    AuthData{Token: token},
		retries: 0,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: UserAgent,
		logger:    log.StandardLogger(),
	}

	for _, o := range opts {
		o(&c)
	}

	if _, err := url.Parse(c.HostURL); err != nil {
		return nil, errors.Wrapf(err, "invalid endpoint %s", c.HostURL)
	}

	// ensure the server URL never has a trailing slash, paths start with one.
	c.HostURL = strings.TrimSuffix(c.HostURL, "/")

	return &c, nil
}

func (c *HttpClient) Logger() log.FieldLogger {
	return c.logger
}

func DoRequestWithApiToken[Parsed any](c *HttpClient, req *http.Request, parse func(resp *http.Response) (*Parsed, error)) (*Parsed, error) {
	if c.auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.auth.Token)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get(HeaderOpcRequestID) == "" {
		req.Header.Set(HeaderOpcRequestID, strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")))
	}

	logger := c.logger.WithFields(log.Fields{
		"method":           req.Method,
		"url":              req.URL.String(),
		HeaderOpcRequestID: req.Header.Get(HeaderOpcRequestID),
	})
	logger.Debug("sending request")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// perform retries, if the client was configured as retryable.
		backoff := 1 * time.Second
		for retries := c.retries; retries > 0; retries-- {
			logger.WithError(err).WithField("backoff", backoff).Debug("request failed, retrying")
			select {
			case <-req.Context().Done():
				return nil, errors.Wrap(req.Context().Err(), "request canceled while retrying")
			case <-time.After(backoff):
			}
			backoff = backoff << 1
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return nil, errors.Wrap(bodyErr, "failed to rewind request body")
				}
				req.Body = body
			}
			resp, err = c.HTTPClient.Do(req)
			if err == nil {
				break
			}
		}
		// if the retries also failed, error out.
		if err != nil {
			return nil, errors.Wrapf(err, "request failed, the failed request was retried: %vx", c.retries)
		}
	}

	//nolint
	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		serviceErr := newServiceError(resp, body)
		logger.WithField("status", resp.StatusCode).Debug("request returned an error status")
		return nil, serviceErr
	}

	return parse(resp)
}

// Call describes one REST operation.
type Call struct {
	Method string
	// Path is a template such as /20210630/certificateAuthorities/{certificateAuthorityId}.
	Path       string
	PathParams map[string]string
	Query      url.Values
	Header     http.Header
	Body       *model.Instance

	// ResponseType names the model a single object body decodes to.
	ResponseType string
	// ListType names the element model of an array body.
	ListType string
}

func (c *HttpClient) expandPath(call Call) (string, error) {
	var expandErr error
	path := pathParamPattern.ReplaceAllStringFunc(call.Path, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := call.PathParams[name]
		if !ok || value == "" {
			if expandErr == nil {
				expandErr = errors.Errorf("missing required path parameter %s", name)
			}
			return m
		}
		styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
		if err != nil && expandErr == nil {
			expandErr = errors.Wrapf(err, "invalid path parameter %s", name)
		}
		return styled
	})
	return path, expandErr
}

func (c *HttpClient) newRequest(ctx context.Context, call Call) (*http.Request, error) {
	path, err := c.expandPath(call)
	if err != nil {
		return nil, err
	}

	target := c.HostURL + path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var body io.Reader
	if call.Body != nil {
		buf, err := wireJSON.Marshal(model.Encode(call.Body))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %s", call.Body.TypeName())
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, target, body)
	if err != nil {
		return nil, err
	}
	for k, values := range call.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.Method == http.MethodPost && req.Header.Get(HeaderOpcRetryToken) == "" {
		req.Header.Set(HeaderOpcRetryToken, uuid.NewString())
	}
	return req, nil
}

// Invoke performs call and decodes its body with codec. Responses to GET
// requests can be re-issued with Response.Poll.
func (c *HttpClient) Invoke(ctx context.Context, call Call, codec *model.Codec) (*Response, error) {
	req, err := c.newRequest(ctx, call)
	if err != nil {
		return nil, err
	}

	resp, err := DoRequestWithApiToken(c, req, func(resp *http.Response) (*Response, error) {
		return parseResponse(resp, call, codec)
	})
	if err != nil {
		return nil, err
	}

	if call.Method == http.MethodGet {
		resp.poll = func(ctx context.Context) (*Response, error) {
			return c.Invoke(ctx, call, codec)
		}
	}
	return resp, nil
}

func parseResponse(resp *http.Response, call Call, codec *model.Codec) (*Response, error) {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	out := &Response{
		StatusCode:       resp.StatusCode,
		Header:           resp.Header,
		OpcRequestID:     resp.Header.Get(HeaderOpcRequestID),
		OpcWorkRequestID: resp.Header.Get(HeaderOpcWorkRequestID),
		ETag:             resp.Header.Get(HeaderETag),
		RawBody:          b,
	}

	if len(bytes.TrimSpace(b)) == 0 || (call.ResponseType == "" && call.ListType == "") {
		return out, nil
	}

	var body any
	if err := wireJSON.Unmarshal(b, &body); err != nil {
		return nil, errors.Wrapf(err, "invalid JSON response from %s %s", call.Method, call.Path)
	}

	switch doc := body.(type) {
	case map[string]any:
		if call.ResponseType != "" {
			out.Data, err = codec.Decode(doc, call.ResponseType)
		} else if items, ok := doc["items"].([]any); ok {
			out.Items, err = codec.DecodeList(items, call.ListType)
		}
	case []any:
		if call.ListType != "" {
			out.Items, err = codec.DecodeList(doc, call.ListType)
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
