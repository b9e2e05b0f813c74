// Package debug provides an opt-in timestamped trace log on stderr.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr

	tagColor  = color.New(color.FgCyan)
	timeColor = color.New(color.FgHiBlack)
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	emit(fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	emit(paint(tagColor, "=== "+section+" ==="))
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	emit(fmt.Sprintf("%s = %v", paint(tagColor, key), value))
}

func emit(msg string) {
	mu.RLock()
	w := out
	mu.RUnlock()

	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(w, "%s %s %s\n", paint(tagColor, "[DEBUG]"), paint(timeColor, timestamp), msg)
}

func paint(c *color.Color, s string) string {
	mu.RLock()
	plain := noColor || color.NoColor
	mu.RUnlock()
	if plain {
		return s
	}
	// Force color: the writer may not be a terminal even when colors are wanted.
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}
