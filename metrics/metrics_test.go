package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	p := New()

	p.ObserveRequest("v2", "GET", 200, 10*time.Millisecond)
	p.ObserveRequest("v2", "GET", 200, 20*time.Millisecond)
	p.ObserveRequest("v1", "POST", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.requests.WithLabelValues("v2", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.requests.WithLabelValues("v1", "POST", "0")))
	assert.Equal(t, 2, testutil.CollectAndCount(p.duration))

	families, err := p.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "square_client_requests_total")
	assert.Contains(t, names, "square_client_request_duration_seconds")
}

func TestNilPrometheusIsNoop(t *testing.T) {
	var p *Prometheus
	assert.NotPanics(t, func() { p.ObserveRequest("v1", "GET", 200, time.Second) })
}
