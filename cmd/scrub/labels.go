package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var labelCaser = cases.Title(language.English)

// displayLabel renders a detection label for humans ("hate_speech" becomes
// "Hate Speech"). Stored labels stay lowercase; this is output-only.
func displayLabel(label string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(label), "_", " ")
	if cleaned == "" {
		return ""
	}
	return labelCaser.String(cleaned)
}

func displayLabels(labels []string) string {
	if len(labels) == 0 {
		return "-"
	}
	rendered := make([]string, 0, len(labels))
	for _, label := range labels {
		rendered = append(rendered, displayLabel(label))
	}
	return strings.Join(rendered, ", ")
}
