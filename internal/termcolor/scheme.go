package termcolor

import (
	"strconv"
	"strings"
)

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// SchemeEnv overrides background detection with "light" or "dark".
const SchemeEnv = "COMMENTMARK_SCHEME"

// DetectScheme guesses the terminal background from SchemeEnv, then
// COLORFGBG, then a TERM name containing "light". The default is dark.
func DetectScheme(env map[string]string) Scheme {
	switch strings.ToLower(strings.TrimSpace(env[SchemeEnv])) {
	case "light":
		return SchemeLight
	case "dark":
		return SchemeDark
	}
	if raw := strings.TrimSpace(env["COLORFGBG"]); raw != "" {
		parts := strings.Split(raw, ";")
		bgRaw := strings.TrimSpace(parts[len(parts)-1])
		if bgRaw == "" && len(parts) >= 2 {
			bgRaw = strings.TrimSpace(parts[len(parts)-2])
		}
		if bg, err := strconv.Atoi(bgRaw); err == nil && bg >= 0 {
			if bg >= 7 {
				return SchemeLight
			}
			return SchemeDark
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}
