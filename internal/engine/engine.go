package engine

import (
	"bytes"
	"context"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/phyten/commentmark/internal/detect"
	"github.com/phyten/commentmark/internal/keyword"
	"github.com/phyten/commentmark/internal/model"
	"github.com/phyten/commentmark/internal/progress"
	"github.com/phyten/commentmark/internal/scan"
	"github.com/phyten/commentmark/internal/syntax"
	"github.com/phyten/commentmark/internal/token"
)

const maxWorkers = 64

type fileResult struct {
	items []model.Item
	errs  []ItemError
}

// pass holds what every worker shares. Everything in it is read-only once
// Run starts the workers.
type pass struct {
	opts    Options
	fs      afero.Fs
	cfg     token.Snapshot
	scanner *scan.Scanner
}

// Run walks the repository and returns every highlight and, when enabled,
// every keyword. Per-file failures are collected in Result.Errors.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	log := zerolog.Ctx(ctx)

	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if strings.TrimSpace(opts.RepoDir) == "" {
		opts.RepoDir = "."
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Jobs > maxWorkers {
		opts.Jobs = maxWorkers
	}
	opts.DetectLangs = detect.CanonicalDetectLangs(opts.DetectLangs)

	filter, err := newFileFilter(opts.Paths, opts.Excludes, opts.ExcludeTypical)
	if err != nil {
		return nil, err
	}
	tracker := progress.NewTracker(opts.Progress)
	tracker.Stage(progress.StageList, -1)
	files, err := listFiles(opts.Fs, opts.RepoDir, filter)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("files", len(files)).Str("repo", opts.RepoDir).Msg("files listed")

	cfg := token.Capture(opts.Tokens)
	p := &pass{opts: opts, fs: opts.Fs, cfg: cfg, scanner: scan.New(cfg)}

	items, errs := p.runWorkers(ctx, files, tracker)
	tracker.Done()
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("highlight pass interrupted: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].File != items[j].File {
			return items[i].File < items[j].File
		}
		return items[i].Span.ByteStart < items[j].Span.ByteStart
	})
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].File != errs[j].File {
			return errs[i].File < errs[j].File
		}
		return errs[i].Stage < errs[j].Stage
	})

	return &Result{
		Items:      items,
		Files:      len(files),
		Total:      len(items),
		ElapsedMS:  time.Since(start).Milliseconds(),
		Errors:     errs,
		ErrorCount: len(errs),
	}, nil
}

func (p *pass) runWorkers(ctx context.Context, files []string, tracker *progress.Tracker) ([]model.Item, []ItemError) {
	if len(files) == 0 {
		return nil, nil
	}
	tracker.Stage(progress.StageHighlight, len(files))

	jobs := make(chan string)
	results := make(chan fileResult)

	workers := p.opts.Jobs
	if workers > len(files) {
		workers = len(files)
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			parser := syntax.NewParser()
			defer parser.Close()
			for rel := range jobs {
				if ctx.Err() != nil {
					return
				}
				items, errs := p.processFile(ctx, parser, rel)
				results <- fileResult{items: items, errs: errs}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, rel := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- rel:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var items []model.Item
	var errs []ItemError
	for res := range results {
		items = append(items, res.items...)
		errs = append(errs, res.errs...)
		tracker.Advance(len(res.items))
	}
	return items, errs
}

func newItemError(file, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Stage: stage, Message: msg}
}

// processFile reads comments from a syntax tree when the language has a
// grammar and the file is within MaxFileBytes, otherwise from the language's
// comment delimiters. Plain text files are scanned whole.
func (p *pass) processFile(ctx context.Context, parser *syntax.Parser, rel string) ([]model.Item, []ItemError) {
	log := zerolog.Ctx(ctx).With().Str("file", rel).Logger()

	data, err := afero.ReadFile(p.fs, joinRepo(p.opts.RepoDir, rel))
	if err != nil {
		return nil, []ItemError{newItemError(rel, "read", err)}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		log.Trace().Msg("binary file skipped")
		return nil, nil
	}
	if !utf8.Valid(data) {
		log.Debug().Msg("invalid utf-8, skipped")
		return nil, nil
	}

	info := detect.FromPathAndContent(rel, data)
	if !detect.MatchesLang(info, p.opts.DetectLangs) {
		return nil, nil
	}
	lang := detect.NormalizeLangName(info.Name)
	f := &fileScan{pass: p, rel: rel, lang: lang, data: data, lines: newLineIndex(data)}

	if lang == detect.PlainText {
		f.highlight(model.ItemKindPlainText, scan.PlainText(string(data), 0, p.cfg))
		return f.items, nil
	}

	var errs []ItemError
	tooLarge := p.opts.MaxFileBytes > 0 && len(data) > p.opts.MaxFileBytes
	if syntax.Supported(lang) && !tooLarge {
		err := f.fromTree(ctx, parser)
		if err == nil {
			return f.items, nil
		}
		if ctx.Err() != nil {
			return nil, nil
		}
		log.Warn().Err(err).Msg("parse failed, falling back to comment delimiters")
		errs = append(errs, newItemError(rel, "parse", err))
		f.items = nil
	}
	if style, ok := detect.StyleFor(lang); ok {
		for _, seg := range styleComments(data, style) {
			f.highlight(model.ItemKindComment, p.scanner.Scan(seg.text, seg.offset))
		}
	}
	return f.items, errs
}

type fileScan struct {
	*pass
	rel   string
	lang  string
	data  []byte
	lines lineIndex
	items []model.Item
}

func (f *fileScan) highlight(kind model.ItemKind, hs []scan.Highlight) {
	for _, h := range hs {
		f.items = append(f.items, model.Item{
			File:     f.rel,
			Lang:     f.lang,
			Kind:     kind,
			Category: h.Category.String(),
			Token:    h.Token,
			Key:      h.Key,
			Text:     f.lines.lineText(f.data, h.Start),
			Span:     f.lines.span(h.Start, h.End),
		})
	}
}

func (f *fileScan) fromTree(ctx context.Context, parser *syntax.Parser) error {
	tree, err := parser.Parse(ctx, f.lang, f.data)
	if err != nil {
		return err
	}
	defer tree.Close()

	classifier := keyword.ForOrNone(f.lang)
	var hs []scan.Highlight
	syntax.Walk(tree.Root(), func(n *sitter.Node) bool {
		kind := n.Type()
		if syntax.IsComment(kind) {
			hs = f.scanner.Append(hs[:0], n.Content(f.data), int(n.StartByte()))
			f.highlight(model.ItemKindComment, hs)
			return false
		}
		if f.opts.Keywords && n.ChildCount() == 0 {
			node := syntax.Wrap(n)
			if c := keyword.Classify(classifier, node); c.IsKeyword {
				start, end := int(n.StartByte()), int(n.EndByte())
				f.items = append(f.items, model.Item{
					File:           f.rel,
					Lang:           f.lang,
					Kind:           model.ItemKindKeyword,
					Token:          kind,
					Text:           f.lines.lineText(f.data, start),
					MethodModifier: c.IsMethodAccessModifier,
					Span:           f.lines.span(start, end),
				})
			}
		}
		return true
	})
	return nil
}
