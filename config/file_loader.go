package config

import (
	"errors"
	"path"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/kochabx/square/core/tag"
	"github.com/kochabx/square/core/validator"
	kerrors "github.com/kochabx/square/errors"
)

// FileLoader loads configuration from file and environment
type FileLoader struct {
	viper    *viper.Viper
	validate validator.Validator
	name     string
	paths    []string
	optional bool
}

// NewFileLoader creates a new file loader
func NewFileLoader(name string, paths []string, v *viper.Viper, validate validator.Validator) *FileLoader {
	ext := path.Ext(name)

	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetConfigName(strings.TrimSuffix(name, ext))
	v.SetConfigType(strings.TrimPrefix(ext, "."))

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &FileLoader{
		viper:    v,
		validate: validate,
		name:     name,
		paths:    paths,
	}
}

// Load implements Loader interface
func (l *FileLoader) Load(target any) error {
	// defaults first so that file and env values win
	if err := tag.ApplyDefaults(target); err != nil {
		return kerrors.New(500, "failed to apply defaults: %v", err)
	}

	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !l.optional || !errors.As(err, &notFound) {
			return kerrors.New(404, "config file %s not found: %v", l.name, err)
		}
	}

	// AutomaticEnv only covers keys viper already knows about
	bindEnvs(l.viper, reflect.TypeOf(target), "")

	if err := l.viper.Unmarshal(target); err != nil {
		return kerrors.New(500, "config parse error: %v", err)
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return kerrors.New(400, "config validation failed: %v", err).WithCause(err)
		}
	}

	return nil
}

// bindEnvs registers every mapstructure key of t with viper
func bindEnvs(v *viper.Viper, t reflect.Type, prefix string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}

		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		ft := field.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			bindEnvs(v, ft, key)
			continue
		}
		_ = v.BindEnv(key)
	}
}
