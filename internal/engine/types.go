package engine

import (
	"github.com/spf13/afero"

	"github.com/phyten/commentmark/internal/model"
	"github.com/phyten/commentmark/internal/progress"
	"github.com/phyten/commentmark/internal/token"
)

// ItemError records a file that could not be fully processed.
type ItemError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options drives one highlight pass.
type Options struct {
	// Tokens is captured once at the start of Run.
	Tokens         token.Reader `json:"-"`
	Keywords       bool
	DetectLangs    []string
	Paths          []string
	Excludes       []string
	ExcludeTypical bool
	Jobs           int
	RepoDir        string
	// MaxFileBytes switches larger files from syntax trees to comment styles.
	MaxFileBytes int
	Fs           afero.Fs          `json:"-"`
	Progress     progress.Observer `json:"-"`
}

type Result struct {
	Items      []model.Item `json:"items"`
	Files      int          `json:"files"`
	Total      int          `json:"total"`
	ElapsedMS  int64        `json:"elapsed_ms"`
	Errors     []ItemError  `json:"errors,omitempty"`
	ErrorCount int          `json:"error_count"`
}
