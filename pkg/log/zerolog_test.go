package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(zerolog.New(&buf))

	logger.Info("shard loaded",
		String("shard", "model-00001-of-00002.safetensors"),
		Int("index", 1),
		Int64("tensors", 42),
		Bool("purged", true),
		Duration("took", 1500*time.Millisecond),
		Bytes("size", 3<<30),
		Err(errors.New("boom")),
		Any("shape", []int{2, 3}),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "shard loaded", entry["message"])
	assert.Equal(t, "model-00001-of-00002.safetensors", entry["shard"])
	assert.EqualValues(t, 1, entry["index"])
	assert.EqualValues(t, 42, entry["tensors"])
	assert.Equal(t, true, entry["purged"])
	assert.Equal(t, "3.0 GiB", entry["size"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, []any{float64(2), float64(3)}, entry["shape"])
}

func TestZerologAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	logger.Debug("hidden")
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewZerologAdapter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(&buf, zerolog.InfoLevel)

	logger.Info("combined model saved", String("path", "model.safetensors"))

	out := buf.String()
	assert.Contains(t, out, "combined model saved")
	assert.Contains(t, out, "path=model.safetensors")
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x", Err(errors.New("ignored")))
}
