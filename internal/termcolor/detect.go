// Package termcolor decides whether and how highlights are colored on a
// terminal.
package termcolor

import (
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always", "on", "true":
		return ModeAlways, nil
	case "never", "off", "false":
		return ModeNever, nil
	default:
		return ModeAuto, errors.Errorf("unknown color mode: %s", v)
	}
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		env[key] = value
	}
	return env
}

// DetectMode resolves auto mode. First match wins:
//  1. TERM=dumb disables colors.
//  2. NO_COLOR disables colors.
//  3. CLICOLOR=0 disables colors.
//  4. CLICOLOR_FORCE or FORCE_COLOR with a non-zero value enables colors.
//  5. Otherwise colors follow whether stdout is a terminal.
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	if stdout == nil {
		return ModeNever
	}
	switch {
	case strings.EqualFold(strings.TrimSpace(env["TERM"]), "dumb"):
		return ModeNever
	case strings.TrimSpace(env["NO_COLOR"]) != "":
		return ModeNever
	case strings.TrimSpace(env["CLICOLOR"]) == "0":
		return ModeNever
	case forceColor(env["CLICOLOR_FORCE"]), forceColor(env["FORCE_COLOR"]):
		return ModeAlways
	case isTerminal(stdout):
		return ModeAlways
	default:
		return ModeNever
	}
}

// Enabled reports whether to emit colors. ModeAuto only checks that stdout
// is a terminal; use DetectMode for the environment rules.
func Enabled(mode ColorMode, stdout *os.File) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return isTerminal(stdout)
	}
}

// DetectProfile reads COLORTERM and TERM. Anything that is neither truecolor
// nor 256color gets the basic 8 colors.
func DetectProfile(env map[string]string) Profile {
	if v := strings.ToLower(strings.TrimSpace(env["COLORTERM"])); v != "" {
		if strings.Contains(v, "truecolor") || strings.Contains(v, "24bit") || strings.Contains(v, "24-bit") {
			return ProfileTrueColor
		}
	}
	if v := strings.ToLower(strings.TrimSpace(env["TERM"])); strings.Contains(v, "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

// Settings is everything a writer needs to color its output.
type Settings struct {
	Enabled bool
	Profile Profile
	Scheme  Scheme
}

// Resolve turns a --color value into Settings for stdout.
func Resolve(mode string, stdout *os.File, env map[string]string) (Settings, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Settings{}, err
	}
	if m == ModeAuto {
		m = DetectMode(stdout, env)
	}
	return Settings{
		Enabled: m == ModeAlways,
		Profile: DetectProfile(env),
		Scheme:  DetectScheme(env),
	}, nil
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "0"
}
