package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"
)

const (
	// Buffer pool constants
	defaultBufferSize = 4096
	maxBufferSize     = 1024 * 1024 // 1MB
)

// Client is an HTTP client with pooled request options and encode buffers
type Client struct {
	client         *http.Client
	requestOptPool sync.Pool
	bufferPool     sync.Pool
}

// Option configures the HTTP client
type Option func(*Client)

// WithClient sets a custom HTTP client
func WithClient(client *http.Client) Option {
	return func(h *Client) {
		if client != nil {
			h.client = client
		}
	}
}

// WithTimeout sets the overall timeout of the underlying HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(h *Client) {
		h.client.Timeout = timeout
	}
}

// New creates a new HTTP client
func New(opts ...Option) *Client {
	h := &Client{
		client: &http.Client{},
		requestOptPool: sync.Pool{
			New: func() any {
				return &RequestOption{
					header: make(map[string]string, 8),
					query:  make(map[string]string, 4),
				}
			},
		},
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Part is one field of a multipart/form-data body
type Part struct {
	Name     string
	Filename string
	// ContentType of a file part, application/octet-stream when empty
	ContentType string
	Contents    io.Reader
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// RequestOption holds options for individual HTTP requests
type RequestOption struct {
	ctx       context.Context
	header    map[string]string
	query     map[string]string
	multipart []Part
}

// WithContext sets a custom context for the request
func WithContext(ctx context.Context) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.ctx = ctx
	}
}

// WithHeader sets multiple headers for the request
func WithHeader(header map[string]string) func(*RequestOption) {
	return func(opt *RequestOption) {
		maps.Copy(opt.header, header)
	}
}

// WithQuery sets query parameters, overriding any already present in the URL
func WithQuery(query map[string]string) func(*RequestOption) {
	return func(opt *RequestOption) {
		maps.Copy(opt.query, query)
	}
}

// WithMultipart sends the given parts as multipart/form-data.
// It is ignored when a body is passed to Request.
func WithMultipart(parts ...Part) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.multipart = append(opt.multipart, parts...)
	}
}

func (opt *RequestOption) reset() {
	opt.ctx = nil
	clear(opt.header)
	clear(opt.query)
	opt.multipart = nil
}

// Request sends an HTTP request and reads the whole response.
// body may be nil, an io.Reader, or any value encoded as JSON.
// Non-2xx statuses are not errors; callers inspect Response.StatusCode.
func (cli *Client) Request(method, url string, body any, opts ...func(*RequestOption)) (*Response, error) {
	opt := cli.getRequestOption()
	defer cli.putRequestOption(opt)

	for _, o := range opts {
		o(opt)
	}

	if len(opt.query) > 0 {
		builder, err := FromURL(url)
		if err != nil {
			return nil, err
		}
		url = builder.SetQueryMap(opt.query).String()
	}

	buf := cli.getBuffer()
	defer cli.putBuffer(buf)

	req, err := cli.createRequest(method, url, body, opt.multipart, buf)
	if err != nil {
		return nil, err
	}

	for k, v := range opt.header {
		req.Header.Set(k, v)
	}
	if opt.ctx != nil {
		req = req.WithContext(opt.ctx)
	}

	resp, err := cli.client.Do(req)
	if err != nil {
		return nil, err
	}

	return cli.processResponse(resp)
}

// createRequest creates the request, encoding JSON or multipart bodies into buf.
// The body is a copy of buf: the transport may still read it after Do returns
// while buf is already back in the pool.
func (cli *Client) createRequest(method, url string, body any, parts []Part, buf *bytes.Buffer) (*http.Request, error) {
	switch v := body.(type) {
	case nil:
		if len(parts) > 0 {
			return cli.createMultipartRequest(method, url, parts, buf)
		}
		return http.NewRequest(method, url, nil)
	case io.Reader:
		return http.NewRequest(method, url, v)
	default:
		if err := json.NewEncoder(buf).Encode(v); err != nil {
			return nil, fmt.Errorf("encode json body: %w", err)
		}
		req, err := http.NewRequest(method, url, bytes.NewReader(bytes.Clone(buf.Bytes())))
		if err != nil {
			return nil, err
		}
		req.Header.Set(HeaderContentType, ContentTypeJSON)
		return req, nil
	}
}

func (cli *Client) createMultipartRequest(method, url string, parts []Part, buf *bytes.Buffer) (*http.Request, error) {
	mw := multipart.NewWriter(buf)
	for _, p := range parts {
		var (
			w   io.Writer
			err error
		)
		if p.Filename != "" {
			w, err = mw.CreatePart(fileHeader(p))
		} else {
			w, err = mw.CreateFormField(p.Name)
		}
		if err != nil {
			return nil, err
		}
		if p.Contents != nil {
			if _, err := io.Copy(w, p.Contents); err != nil {
				return nil, fmt.Errorf("write multipart part %q: %w", p.Name, err)
			}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(bytes.Clone(buf.Bytes())))
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderContentType, mw.FormDataContentType())
	return req, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// fileHeader is the part header of a file field
func fileHeader(p Part) textproto.MIMEHeader {
	contentType := p.ContentType
	if contentType == "" {
		contentType = ContentTypeOctetStream
	}

	h := make(textproto.MIMEHeader, 2)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(p.Name), quoteEscaper.Replace(p.Filename)))
	h.Set(HeaderContentType, contentType)
	return h
}

func (cli *Client) getRequestOption() *RequestOption {
	opt := cli.requestOptPool.Get().(*RequestOption)
	opt.reset()
	return opt
}

func (cli *Client) putRequestOption(opt *RequestOption) {
	cli.requestOptPool.Put(opt)
}

func (cli *Client) getBuffer() *bytes.Buffer {
	buf := cli.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool unless it grew past maxBufferSize
func (cli *Client) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxBufferSize {
		cli.bufferPool.Put(buf)
	}
}

func (cli *Client) processResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
