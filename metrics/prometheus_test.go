package metrics_test

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/chinmay1088/chainboard/api"
	"github.com/chinmay1088/chainboard/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ api.Recorder = (*metrics.Metrics)(nil)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.ObserveRequest("balance", "ok", 20*time.Millisecond)
	m.ObserveRequest("balance", "ok", 30*time.Millisecond)
	m.ObserveRequest("balance", "decode", 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var requests, durations uint64
	for _, mf := range families {
		switch mf.GetName() {
		case "chainboard_requests_total":
			for _, metric := range mf.GetMetric() {
				requests += uint64(metric.GetCounter().GetValue())
			}
		case "chainboard_request_duration_seconds":
			for _, metric := range mf.GetMetric() {
				durations += metric.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, uint64(3), requests)
	assert.Equal(t, uint64(3), durations)

	count, err := testutil.GatherAndCount(reg, "chainboard_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewMetricsRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewMetrics(reg)
	assert.Panics(t, func() { metrics.NewMetrics(reg) })
}

func TestServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	m.ObserveRequest("accounts", "ok", time.Millisecond)

	server := metrics.NewServer("127.0.0.1:0", reg)
	require.NoError(t, server.Start())
	defer func() { assert.NoError(t, server.Stop()) }()

	resp, err := http.Get("http://" + server.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `chainboard_requests_total{endpoint="accounts",outcome="ok"} 1`)
}
