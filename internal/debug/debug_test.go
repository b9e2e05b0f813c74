package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	t.Cleanup(func() {
		SetOutput(nil)
		SetDebug(false)
		SetNoColor(false)
	})
	fn()
	return buf.String()
}

func TestSetDebug(t *testing.T) {
	SetDebug(false)
	assert.False(t, IsEnabled())

	SetDebug(true)
	assert.True(t, IsEnabled())

	SetDebug(false)
	assert.False(t, IsEnabled())
}

func TestDebugOutput(t *testing.T) {
	output := capture(t, func() {
		SetDebug(true)
		Debug("spliced %s", "lib/common.glsl")
	})

	assert.Contains(t, output, "[DEBUG]")
	assert.Contains(t, output, "spliced lib/common.glsl")
	assert.Regexp(t, `\d{2}:\d{2}:\d{2}\.\d{3}`, output)
}

func TestDebugDisabled(t *testing.T) {
	output := capture(t, func() {
		SetDebug(false)
		Debug("this should not appear")
		DebugSection("nor this")
		DebugValue("key", 1)
	})

	assert.Empty(t, output)
}

func TestDebugSection(t *testing.T) {
	output := capture(t, func() {
		SetDebug(true)
		DebugSection("Expand")
	})

	assert.Contains(t, output, "=== Expand ===")
}

func TestDebugValue(t *testing.T) {
	output := capture(t, func() {
		SetDebug(true)
		DebugValue("base_dir", "/shaders")
	})

	assert.Contains(t, output, "base_dir = /shaders")
}

func TestNoColorHasNoEscapes(t *testing.T) {
	output := capture(t, func() {
		SetDebug(true)
		Debug("plain")
	})

	assert.NotContains(t, output, "\x1b[")
}
