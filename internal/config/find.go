package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

var (
	configFilenames = []string{
		".commentmark.yaml",
		".commentmark.yml",
		".commentmark.toml",
		".commentmark.json",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
	}
)

// Where a config file was found.
const (
	SourceExplicit = "explicit"
	SourceCwdUp    = "cwd-up"
	SourceXDG      = "xdg"
	SourceHome     = "home"
)

// Find locates the config file. An explicit path must exist; otherwise the
// repo dir and its parents are searched, then the XDG config dir, then home.
// No file found is not an error: both results are empty.
func Find(fsys afero.Fs, repoDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		candidate, err := filepath.Abs(explicit)
		if err != nil {
			return "", "", errors.Errorf("config path: %w", err)
		}
		info, err := fsys.Stat(candidate)
		if err != nil {
			return "", "", errors.Errorf("config path: %w", err)
		}
		if info.IsDir() {
			return "", "", errors.Errorf("config path %q points to a directory", candidate)
		}
		return candidate, SourceExplicit, nil
	}

	start := strings.TrimSpace(repoDir)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", "", errors.Errorf("repo dir: %w", err)
	}
	for {
		if found := firstExisting(fsys, dir, configFilenames); found != "" {
			return found, SourceCwdUp, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := strings.TrimSpace(home)
	if homeDir == "" {
		if h, err := os.UserHomeDir(); err == nil {
			homeDir = h
		}
	}
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if found := firstExisting(fsys, filepath.Join(xdgRoot, "commentmark"), xdgFilenames); found != "" {
			return found, SourceXDG, nil
		}
	}
	if homeDir != "" {
		if found := firstExisting(fsys, homeDir, configFilenames); found != "" {
			return found, SourceHome, nil
		}
	}
	return "", "", nil
}

func firstExisting(fsys afero.Fs, dir string, names []string) string {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if fileExists(fsys, candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
