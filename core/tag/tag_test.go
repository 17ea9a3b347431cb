package tag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logSection struct {
	Level string `default:"info"`
	Dir   string
}

type sample struct {
	BaseURL string        `default:"https://connect.squareup.com"`
	Timeout time.Duration `default:"60s"`
	Retries int           `default:"3"`
	Debug   bool          `default:"true"`
	Ratio   float64       `default:"0.5"`
	Token   string
	Log     logSection
	Extra   *logSection
	hidden  string `default:"x"`
}

func TestApplyDefaults(t *testing.T) {
	s := &sample{}
	require.NoError(t, ApplyDefaults(s))

	assert.Equal(t, "https://connect.squareup.com", s.BaseURL)
	assert.Equal(t, 60*time.Second, s.Timeout)
	assert.Equal(t, 3, s.Retries)
	assert.True(t, s.Debug)
	assert.Equal(t, 0.5, s.Ratio)
	assert.Empty(t, s.Token)
	assert.Equal(t, "info", s.Log.Level)
	require.NotNil(t, s.Extra)
	assert.Equal(t, "info", s.Extra.Level)
	assert.Empty(t, s.hidden)
}

func TestApplyDefaultsKeepsValues(t *testing.T) {
	s := &sample{BaseURL: "http://localhost:8080", Timeout: time.Second}
	require.NoError(t, ApplyDefaults(s))

	assert.Equal(t, "http://localhost:8080", s.BaseURL)
	assert.Equal(t, time.Second, s.Timeout)
}

func TestApplyDefaultsErrors(t *testing.T) {
	assert.ErrorIs(t, ApplyDefaults(sample{}), ErrTargetMustBePointer)
	assert.ErrorIs(t, ApplyDefaults((*sample)(nil)), ErrTargetMustBePointer)

	type bad struct {
		Timeout time.Duration `default:"soon"`
	}
	err := ApplyDefaults(&bad{})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Timeout", fe.Path)

	type unsupported struct {
		Tags []string `default:"a,b"`
	}
	assert.ErrorIs(t, ApplyDefaults(&unsupported{}), ErrUnsupportedType)
}
