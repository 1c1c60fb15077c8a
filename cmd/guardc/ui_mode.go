package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// uiMode is the value of check --ui.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.ToLower(strings.TrimSpace(value)))
	if mode == "" {
		return uiModeAuto, nil
	}
	if !slices.Contains([]uiMode{uiModeAuto, uiModeOn, uiModeOff}, mode) {
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return mode, nil
}

// wantsTUI: в auto-режиме прогресс рисуется, только если stdout и stderr - терминалы.
func (m uiMode) wantsTUI() bool {
	if m == uiModeAuto {
		return isTerminal(os.Stdout) && isTerminal(os.Stderr)
	}
	return m == uiModeOn
}
