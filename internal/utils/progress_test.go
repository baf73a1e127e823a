package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	t.Run("determinate progress bar with known total", func(t *testing.T) {
		bar := NewProgressBar(3, DescIndexing)
		require.NotNil(t, bar)
	})

	t.Run("indeterminate progress bar with unknown total", func(t *testing.T) {
		bar := NewProgressBar(-1, DescWalking)
		require.NotNil(t, bar)
	})
}

func TestNewProgressBarTo(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBarTo(&buf, 2, DescIndexing)
	require.NotNil(t, bar)

	require.NoError(t, bar.Add(1))
	require.NoError(t, bar.Add(1))
	require.NoError(t, bar.Finish())

	assert.Contains(t, buf.String(), DescIndexing)
}
