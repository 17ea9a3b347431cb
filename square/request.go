package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kochabx/square/core/httpclient"
	"github.com/kochabx/square/errors"
)

// Version selects the API generation and therefore the access token
type Version string

const (
	V1 Version = "v1"
	V2 Version = "v2"
)

// Part is one multipart/form-data field
type Part = httpclient.Part

// RequestSpec describes one call. It is built per operation and consumed once.
// Body, Query and Multipart are alternatives; operations set at most one.
type RequestSpec struct {
	Version        Version           `json:"version" validate:"required"`
	Endpoint       string            `json:"endpoint" validate:"required"`
	Method         string            `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE HEAD"`
	LocationScoped bool              `json:"location_scoped"`
	Body           map[string]any    `json:"body,omitempty"`
	Query          map[string]string `json:"query,omitempty"`
	Multipart      []Part            `json:"-"`
}

// Response is the raw answer of the API
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
}

// Decode unmarshals the body into v
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return errors.Internal("square: empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, 500, "square: decode response")
	}
	return nil
}

// Errors returns the v2 error entries carried by the body, if any
func (r *Response) Errors() []errors.APIError {
	if r == nil {
		return nil
	}
	return errors.APIErrors(r.Body)
}

// URL returns the path of spec relative to the base URL:
//
//	v1/{v1_location_id}/{endpoint}          location-scoped v1
//	v2/locations/{v2_location_id}/{endpoint} location-scoped v2
//	{version}/{endpoint}                    otherwise
//
// Versions other than v1 and v2 fail with ErrUnsupportedVersion.
func (c *Client) URL(spec RequestSpec) (string, error) {
	switch {
	case spec.Version != V1 && spec.Version != V2:
		return "", ErrUnsupportedVersion.WithMetadata(map[string]string{"version": string(spec.Version)})
	case !spec.LocationScoped:
		return httpclient.Join(string(spec.Version), spec.Endpoint), nil
	case spec.Version == V1:
		return httpclient.Join(string(V1), url.PathEscape(c.cfg.V1LocationID), spec.Endpoint), nil
	default:
		return httpclient.Join(string(V2), "locations", url.PathEscape(c.cfg.V2LocationID), spec.Endpoint), nil
	}
}

func (c *Client) token(v Version) string {
	if v == V1 {
		return c.cfg.V1Token
	}
	return c.cfg.V2Token
}

// Do validates spec, sends it and returns the response.
//
// An invalid spec fails with ErrInvalidRequest before anything is sent.
// A transport failure returns ErrTransport with the cause attached.
// Any status other than 200 returns the response together with an error
// built by errors.FromResponse.
func (c *Client) Do(ctx context.Context, spec RequestSpec) (*Response, error) {
	spec.Method = strings.ToUpper(spec.Method)
	if err := c.validate.Struct(&spec); err != nil {
		return nil, ErrInvalidRequest.WithCause(err)
	}
	if dotSegment(spec.Endpoint) {
		return nil, ErrInvalidRequest.WithMetadata(map[string]string{"endpoint": spec.Endpoint})
	}

	path, err := c.URL(spec)
	if err != nil {
		return nil, err
	}
	builder, err := httpclient.FromURL(c.cfg.BaseURL)
	if err != nil {
		return nil, ErrInvalidConfig.WithCause(err)
	}
	target := builder.AppendPath(path).String()

	opts := []func(*httpclient.RequestOption){
		httpclient.WithHeader(map[string]string{
			httpclient.HeaderAccept:        httpclient.ContentTypeJSON,
			httpclient.HeaderAuthorization: httpclient.Bearer(c.token(spec.Version)),
		}),
	}
	if ctx != nil {
		opts = append(opts, httpclient.WithContext(ctx))
	}

	// body must stay an untyped nil when absent
	var body any
	switch {
	case len(spec.Body) > 0:
		body = spec.Body
	case len(spec.Multipart) > 0:
		opts = append(opts, httpclient.WithMultipart(spec.Multipart...))
	}
	if len(spec.Query) > 0 {
		opts = append(opts, httpclient.WithQuery(spec.Query))
	}

	start := time.Now()
	resp, err := c.http.Request(spec.Method, target, body, opts...)
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.ObserveRequest(string(spec.Version), spec.Method, 0, elapsed)
		c.logger.Error().
			Err(err).
			Str("method", spec.Method).
			Str("path", path).
			Dur("elapsed", elapsed).
			Msg("square request failed")
		return nil, ErrTransport.WithMetadata(map[string]string{
			"method": spec.Method,
			"path":   path,
		}).WithCause(err)
	}

	c.metrics.ObserveRequest(string(spec.Version), spec.Method, resp.StatusCode, elapsed)

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       json.RawMessage(resp.Body),
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := errors.FromResponse(resp.StatusCode, resp.Body).WithMetadata(map[string]string{
			"method": spec.Method,
			"path":   path,
		})
		c.logger.Warn().
			Str("method", spec.Method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("code", apiErr.Metadata["code"]).
			Dur("elapsed", elapsed).
			Msg("square request rejected")
		return out, apiErr
	}

	c.logger.Debug().
		Str("method", spec.Method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("square request")

	return out, nil
}

// dotSegment reports whether endpoint has a "." or ".." segment
func dotSegment(endpoint string) bool {
	for seg := range strings.SplitSeq(endpoint, "/") {
		if seg == "." || seg == ".." {
			return true
		}
	}
	return false
}

// segment validates a caller supplied id and escapes it for use in a path
func (c *Client) segment(name, value string) (string, error) {
	if err := c.validate.Var(name, value, "required,ne=.,ne=.."); err != nil {
		return "", ErrInvalidArgument.WithCause(err)
	}
	return url.PathEscape(value), nil
}

// check validates a single argument against a validator tag
func (c *Client) check(name string, value any, tag string) error {
	if err := c.validate.Var(name, value, tag); err != nil {
		return ErrInvalidArgument.WithCause(err)
	}
	return nil
}
