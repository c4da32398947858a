package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var levelStyles = map[string]lipgloss.Style{
	"INFO": lipgloss.NewStyle().
		Padding(0, 1, 0, 1).
		Bold(true).
		MaxWidth(80).
		Background(lipgloss.Color("87")).
		Foreground(lipgloss.Color("16")),
	"WARN": lipgloss.NewStyle().
		Padding(0, 1, 0, 1).
		Bold(true).
		MaxWidth(80).
		Background(lipgloss.Color("214")).
		Foreground(lipgloss.Color("0")),
	"ERRO": lipgloss.NewStyle().
		Padding(0, 1, 0, 1).
		Bold(true).
		MaxWidth(80).
		Background(lipgloss.Color("204")).
		Foreground(lipgloss.Color("0")),
	"DEBU": lipgloss.NewStyle().
		Padding(0, 1, 0, 1).
		Bold(true).
		MaxWidth(80).
		Background(lipgloss.Color("63")).
		Foreground(lipgloss.Color("0")),
}

// ColorizeLogs styles the level tags of buffered log lines for the dashboard
// viewport.
func ColorizeLogs(logs []string) []string {
	for i, line := range logs {
		// Only style if not already styled (check for ANSI codes)
		if strings.Contains(line, "\x1b[") {
			continue
		}
		for level, style := range levelStyles {
			if strings.Contains(line, level) {
				logs[i] = strings.Replace(line, level, style.Render(level), 1)
				break
			}
		}
	}
	return logs
}

// FormatPrice renders a USD amount the way the storefront does: whole
// dollars, thousands separated by commas.
func FormatPrice(amount float64) string {
	whole := int64(math.Round(amount))

	negative := whole < 0
	if negative {
		whole = -whole
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
