package pretty

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStyles(t *testing.T) {
	t.Run("color styles are distinct", func(t *testing.T) {
		styles := NewStyles(true)
		require.NotNil(t, styles)
		assert.True(t, styles.FilePath.GetBold())
		assert.True(t, styles.Success.GetBold())
	})

	t.Run("no-color styles render plain", func(t *testing.T) {
		styles := NewStyles(false)
		require.NotNil(t, styles)
		assert.Equal(t, "hello", styles.Failure.Render("hello"))
		assert.Equal(t, "hello", styles.ScopeName.Render("hello"))
	})
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	t.Run("always", func(t *testing.T) {
		assert.True(t, IsColorEnabled("always", &buf))
	})

	t.Run("never", func(t *testing.T) {
		assert.False(t, IsColorEnabled("never", &buf))
	})

	t.Run("auto with non-tty writer", func(t *testing.T) {
		assert.False(t, IsColorEnabled("auto", &buf))
	})

	t.Run("auto respects NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.False(t, IsColorEnabled("auto", &buf))
	})
}

func TestTerminalWidth(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, defaultWidth, TerminalWidth(&buf))
}
