package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/kochabx/square/core/validator"
)

// Square holds the endpoint and credentials of one Square account.
// Environment variables override file values: square.v2_token is read from
// SQUARE_V2_TOKEN, square.base_url from SQUARE_BASE_URL and so on.
type Square struct {
	BaseURL      string        `mapstructure:"base_url" json:"base_url" default:"https://connect.squareup.com" validate:"required,url"`
	Timeout      time.Duration `mapstructure:"timeout" json:"timeout" default:"60s" validate:"gt=0"`
	V1Token      string        `mapstructure:"v1_token" json:"v1_token" validate:"required"`
	V2Token      string        `mapstructure:"v2_token" json:"v2_token" validate:"required"`
	V1LocationID string        `mapstructure:"v1_location_id" json:"v1_location_id" validate:"required"`
	V2LocationID string        `mapstructure:"v2_location_id" json:"v2_location_id" validate:"required"`
	RedirectURL  string        `mapstructure:"redirect_url" json:"redirect_url" validate:"omitempty,url"`
}

// Log configures the process logger
type Log struct {
	Level string `mapstructure:"level" json:"level" default:"info" validate:"oneof=trace debug info warn error"`
	// Dir enables file output when set
	Dir        string `mapstructure:"dir" json:"dir"`
	RotateMode string `mapstructure:"rotate_mode" json:"rotate_mode" default:"size" validate:"oneof=size time"`
}

// File is the layout of square.yaml
type File struct {
	Square Square `mapstructure:"square" json:"square"`
	Log    Log    `mapstructure:"log" json:"log"`
}

// Config loads configuration into a target struct
type Config struct {
	mu       sync.Mutex
	viper    *viper.Viper
	validate validator.Validator
	target   any
	loader   Loader
	name     string
	paths    []string
	optional bool
}

// New creates a new Config instance with the given options.
// Without WithLoader a FileLoader reading square.yaml from "." is used.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.Validate,
		target:   target,
		name:     "square.yaml",
		paths:    []string{"."},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		l := NewFileLoader(c.name, c.paths, c.viper, c.validate)
		l.optional = c.optional
		c.loader = l
	}

	return c
}

// Load reads the configuration into the target. It is meant to run once at
// startup; the values handed to the client are copied and never reloaded.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loader.Load(c.target)
}

// GetViper returns the underlying viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}

// Load is a shortcut reading square.yaml (optional) from paths into a File
func Load(paths ...string) (*File, error) {
	f := new(File)
	opts := []Option{WithOptionalFile()}
	if len(paths) > 0 {
		opts = append(opts, WithPaths(paths...))
	}
	if err := New(f, opts...).Load(); err != nil {
		return nil, err
	}
	return f, nil
}
