package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	warningColor = lipgloss.Color("#FFA500")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	okStyle    = lipgloss.NewStyle().Foreground(successColor)
	warnStyle  = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// paint renders text with s unless --no-color is set.
func paint(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

// printer formats numbers for --lang. Unknown tags fall back to English.
func printer() *message.Printer {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// bytesLabel renders n as "1.8 KiB (1,792 bytes)", or just "512 bytes" below
// one KiB.
func bytesLabel(n int) string {
	p := printer()
	if n < 1024 {
		return p.Sprintf("%d bytes", n)
	}
	return p.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(n)), n)
}

// count renders n with locale digit grouping.
func count(n int) string {
	return printer().Sprintf("%d", n)
}
