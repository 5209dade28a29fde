// Package console prints operator-facing status lines and renders the archive
// for the terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Printer writes styled, emoji-prefixed status lines.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: w}
}

// Discard returns a Printer that drops everything.
func Discard() *Printer {
	return NewPrinter(io.Discard)
}

func (p *Printer) line(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}

// Banner prints a bold heading.
func (p *Printer) Banner(title string) {
	p.line(BannerStyle.Render(title))
}

// Info prints a progress line.
func (p *Printer) Info(format string, args ...any) {
	p.line(InfoStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...any) {
	p.line(SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a recoverable problem.
func (p *Printer) Warn(format string, args ...any) {
	p.line(WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints a failure.
func (p *Printer) Error(format string, args ...any) {
	p.line(ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Help prints dimmed hint text.
func (p *Printer) Help(format string, args ...any) {
	p.line(HelpStyle.Render(fmt.Sprintf(format, args...)))
}

// Separator prints a horizontal rule.
func (p *Printer) Separator() {
	p.line(SeparatorStyle.Render(strings.Repeat("-", 20)))
}

// Fact prints a fact inside a box.
func (p *Printer) Fact(text string) {
	p.line(FactBoxStyle.Render(FactStyle.Render(text)))
}

// Plain prints s without styling.
func (p *Printer) Plain(s string) {
	p.line(s)
}

// RenderMarkdown renders md for the terminal. style is a glamour standard
// style name ("dark", "light", "notty", ...) or "auto" to detect it.
func RenderMarkdown(md, style string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
