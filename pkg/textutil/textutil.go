// Package textutil has small text-formatting helpers for help output.
package textutil

import "strings"

// Wrap greedily wraps text into lines no wider than width, splitting on whitespace. Words longer
// than width get a line of their own. Returns nil for empty input.
func Wrap(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
