package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the parsed --ui flag.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

var uiModeNames = map[string]uiMode{"": uiAuto, "auto": uiAuto, "on": uiOn, "off": uiOff}

func readUIMode(value string) (uiMode, error) {
	m, ok := uiModeNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return m, nil
}

// enabled resolves auto to on only when both stdin and stdout are terminals,
// since the viewer reads keys.
func (m uiMode) enabled() bool {
	if m == uiAuto {
		return isTerminal(os.Stdout) && isTerminal(os.Stdin)
	}
	return m == uiOn
}
