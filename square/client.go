package square

import (
	"github.com/kochabx/square/config"
	"github.com/kochabx/square/core/httpclient"
	"github.com/kochabx/square/core/tag"
	"github.com/kochabx/square/core/util/id"
	"github.com/kochabx/square/core/validator"
	"github.com/kochabx/square/errors"
	"github.com/kochabx/square/log"
	"github.com/kochabx/square/metrics"
)

var (
	ErrInvalidConfig      = errors.BadRequest("square: invalid config")
	ErrInvalidRequest     = errors.BadRequest("square: invalid request")
	ErrInvalidArgument    = errors.BadRequest("square: invalid argument")
	ErrUnsupportedVersion = errors.BadRequest("square: unsupported api version")
	ErrTransport          = errors.BadGateway("square: transport failure")
)

// Client sends requests to the Square API. The configuration is copied at
// construction and never changes afterwards, so a Client may be shared.
type Client struct {
	cfg         config.Square
	http        httpclient.Clienter
	logger      *log.Logger
	metrics     *metrics.Prometheus
	validate    validator.Validator
	newKey      func() string
	redirectURL string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the transport. The configured timeout is only
// applied to the default transport.
func WithHTTPClient(h httpclient.Clienter) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger, log.G by default
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records every request in p
func WithMetrics(p *metrics.Prometheus) Option {
	return func(c *Client) {
		c.metrics = p
	}
}

// WithIdempotencyKey replaces the idempotency key generator
func WithIdempotencyKey(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newKey = fn
		}
	}
}

// WithRedirectURL overrides the checkout redirect URL from the config
func WithRedirectURL(u string) Option {
	return func(c *Client) {
		c.redirectURL = u
	}
}

// New fills unset fields of cfg from their defaults, validates it and
// creates a Client.
func New(cfg config.Square, opts ...Option) (*Client, error) {
	if err := tag.ApplyDefaults(&cfg); err != nil {
		return nil, ErrInvalidConfig.WithCause(err)
	}
	if err := validator.Validate.Struct(&cfg); err != nil {
		return nil, ErrInvalidConfig.WithCause(err)
	}

	c := &Client{
		cfg:         cfg,
		logger:      log.G,
		validate:    validator.Validate,
		newKey:      id.IdempotencyKey,
		redirectURL: cfg.RedirectURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = httpclient.New(httpclient.WithTimeout(cfg.Timeout))
	}

	return c, nil
}

// Config returns a copy of the client configuration
func (c *Client) Config() config.Square {
	return c.cfg
}
