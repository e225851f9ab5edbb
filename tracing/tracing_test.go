package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "spans.txt")
	require.NoError(t, Init("conveyor", "0.0.1", location))

	_, span := StartSpan(context.Background(), "conveyor.produce", KindProducer)
	span.WithAttributes(map[string]string{"items": "8"})
	EndSpan(span, nil)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.NotEmpty(t, data, "expected exported span data")
}
