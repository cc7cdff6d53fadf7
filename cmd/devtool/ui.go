package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// UI prints status lines. Color is dropped for non-terminal writers.
type UI struct {
	out   io.Writer
	color bool
}

var stdoutUI = NewUI(os.Stdout, true)

// NewUI creates a UI writing to out
func NewUI(out io.Writer, color bool) *UI {
	return &UI{out: out, color: color}
}

func (u *UI) line(color, symbol, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if u.color {
		fmt.Fprintf(u.out, "%s%s %s%s\n", color, symbol, msg, colorReset)
		return
	}
	fmt.Fprintf(u.out, "%s %s\n", symbol, msg)
}

func (u *UI) Info(format string, a ...interface{})    { u.line(colorBlue, "ℹ", format, a...) }
func (u *UI) Success(format string, a ...interface{}) { u.line(colorGreen, "✓", format, a...) }
func (u *UI) Warning(format string, a ...interface{}) { u.line(colorYellow, "⚠", format, a...) }
func (u *UI) Error(format string, a ...interface{})   { u.line(colorRed, "✗", format, a...) }

func (u *UI) Header(title string) {
	if u.color {
		fmt.Fprintf(u.out, "\n%s=== %s ===%s\n", colorYellow, title, colorReset)
		return
	}
	fmt.Fprintf(u.out, "\n=== %s ===\n", title)
}

// Plain writes an undecorated line
func (u *UI) Plain(format string, a ...interface{}) {
	fmt.Fprintf(u.out, format+"\n", a...)
}
