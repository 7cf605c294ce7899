package observability_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumatoshi-tech/treeminer/internal/observability"
)

func TestMetrics_ServeExposesObservedValues(t *testing.T) {
	t.Parallel()

	m := observability.NewMetrics()
	m.Observe(4, 3, 12*time.Millisecond)

	const addr = "127.0.0.1:19876"

	// Serve's net.Listen call completes synchronously before returning, so
	// the endpoint is reachable as soon as shutdown is in hand.
	shutdown, err := m.Serve(addr)
	require.NoError(t, err)
	t.Cleanup(shutdown)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "treeminer_patterns_total 4")
	assert.Contains(t, out, "treeminer_max_pattern_size 3")
	assert.True(t, strings.Contains(out, "treeminer_mining_duration_seconds"))
}
