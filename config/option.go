package config

import (
	"github.com/spf13/viper"

	"github.com/kochabx/square/core/validator"
)

// Option is a function that configures a Config
type Option func(*Config)

// WithViper sets a custom viper instance
func WithViper(v *viper.Viper) Option {
	return func(c *Config) {
		c.viper = v
	}
}

// WithValidator sets a custom validator
func WithValidator(v validator.Validator) Option {
	return func(c *Config) {
		c.validate = v
	}
}

// WithLoader sets the configuration loader
func WithLoader(loader Loader) Option {
	return func(c *Config) {
		c.loader = loader
	}
}

// WithFile sets the file name, e.g. "square.yaml" or "prod.json"
func WithFile(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}

// WithPaths sets the directories searched for the file
func WithPaths(paths ...string) Option {
	return func(c *Config) {
		c.paths = paths
	}
}

// WithOptionalFile lets Load succeed from defaults and environment alone
// when no file is found
func WithOptionalFile() Option {
	return func(c *Config) {
		c.optional = true
	}
}
