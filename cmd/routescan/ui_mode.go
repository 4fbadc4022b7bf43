package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI keeps the progress view off when stdout is redirected, so
// piped reports stay clean.
func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout) && isTerminal(os.Stderr)
	}
}

// readColorMode normalizes --color and [output].color values to
// auto|always|never.
func readColorMode(value string) (string, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return "auto", nil
	case "on", "always", "true":
		return "always", nil
	case "off", "never", "false":
		return "never", nil
	default:
		return "", fmt.Errorf("invalid color mode %q (expected auto|on|off)", value)
	}
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(f) && os.Getenv("NO_COLOR") == ""
	}
}
