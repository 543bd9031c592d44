// Package driver runs the sniff pipeline over files: load, tokenize,
// dispatch, fix to a fixed point, write back.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"codesniff/internal/diag"
	"codesniff/internal/fix"
	"codesniff/internal/observ"
	"codesniff/internal/sniff"
	"codesniff/internal/source"
	"codesniff/internal/stream"
	"codesniff/internal/trace"
)

// Mode selects what a run does with each file.
type Mode uint8

const (
	// ModeCheck only reports.
	ModeCheck Mode = iota
	// ModeFix applies fixes and reports what remains.
	ModeFix
)

// Options configure a run.
type Options struct {
	Mode           Mode
	Registrations  []sniff.Registration
	TabWidth       int
	Encoding       string
	MaxPasses      int
	MaxDiagnostics int
	// DryRun keeps fixed content in memory.
	DryRun bool
	Jobs   int
	// Cache serves check runs; nil disables it.
	Cache *DiskCache
	// Timings records per-file phases.
	Timings bool
	// Progress is called from worker goroutines after every file.
	Progress func(FileResult)
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path  string
	File  *source.File   // исходная версия
	Final *stream.Stream // nil, если файл не загрузился
	Bag   *diag.Bag
	Fix   *fix.Result // только в ModeFix
	// Cached is set when findings came from the disk cache.
	Cached  bool
	Written bool
	Timing  *observ.Report
	Err     error
}

// Fixed returns the fixed content, or "" when nothing changed.
func (r *FileResult) Fixed() string {
	if r.Fix == nil || !r.Fix.Changed() {
		return ""
	}
	return r.Fix.Content()
}

// Findings counts sniff findings (contract and engine diagnostics excluded).
func (r *FileResult) Findings() int {
	if r.Bag == nil {
		return 0
	}
	n := 0
	for _, d := range r.Bag.Items() {
		if d.Code == diag.SniffViolation {
			n++
		}
	}
	return n
}

// Unstable reports whether the fix loop gave up on the file.
func (r *FileResult) Unstable() bool {
	return r.Fix != nil && !r.Fix.Converged()
}

// ProcessFile runs the pipeline over one file loaded into fs.
// I/O failures end up both in Err and as an IO diagnostic in Bag.
func ProcessFile(ctx context.Context, fs *source.FileSet, path string, opts Options) FileResult {
	tracer := trace.FromContext(ctx)
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)

	res := FileResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
	timer := observ.NewTimer()
	defer func() {
		if opts.Timings {
			report := timer.Report()
			res.Timing = &report
		}
		span.WithExtra("findings", strconv.Itoa(res.Findings())).End(outcome(&res))
	}()

	phase := timer.Begin("load")
	fileID, err := fs.Load(path, opts.Encoding)
	timer.End(phase, "")
	if err != nil {
		res.Err = err
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadError,
			Message:  err.Error(),
			Token:    -1,
		})
		return res
	}
	res.File = fs.Get(fileID)
	regs := sniff.ForPath(opts.Registrations, path)

	var key Digest
	if opts.Mode == ModeCheck && opts.Cache != nil {
		key = cacheKey(res.File.Hash, RulesetDigest(regs, opts.TabWidth, opts.Encoding))
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			res.Bag = payload.restore(fileID)
			res.Cached = true
			trace.Point(tracer, trace.ScopeFile, "cache-hit", path, span.ID())
			return res
		}
	}

	phase = timer.Begin("tokenize")
	st := stream.New(res.File, stream.Options{TabWidth: opts.TabWidth})
	timer.End(phase, strconv.Itoa(st.Len())+" tokens")

	engineMode := sniff.ModeReport
	if opts.Mode == ModeFix {
		engineMode = sniff.ModeFix
	}
	engine := sniff.NewEngine(regs, sniff.Options{Mode: engineMode, Tracer: tracer, Parent: span.ID()})

	var findings *diag.Bag
	switch opts.Mode {
	case ModeFix:
		phase = timer.Begin("fix")
		res.Fix = fix.Loop(ctx, st, engine, fix.Options{MaxPasses: opts.MaxPasses})
		timer.End(phase, fmt.Sprintf("%d passes, %s", res.Fix.Passes, res.Fix.Outcome))
		res.Final = res.Fix.Stream
		findings = res.Fix.Diagnostics
		if !res.Fix.Converged() {
			// последний проход что-то применил: находки пересчитываются по итоговому тексту
			phase = timer.Begin("report")
			findings = engine.Run(res.Final)
			timer.End(phase, "")
		}
		res.Fix.Report(findings)
	default:
		phase = timer.Begin("sniff")
		findings = engine.Run(st)
		timer.End(phase, strconv.Itoa(len(engine.Codes()))+" sniffs")
		res.Final = st
	}

	for _, d := range res.Final.Diagnostics.Items() {
		res.Bag.Add(d)
	}
	for _, d := range findings.Items() {
		res.Bag.Add(d)
	}
	res.Bag.Sort()

	if opts.Mode == ModeCheck && opts.Cache != nil {
		if err := opts.Cache.Put(key, payloadFromDiagnostics(path, res.Bag.Items())); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache-put-failed", err.Error(), span.ID())
		}
	}

	if opts.Mode == ModeFix && !opts.DryRun {
		phase = timer.Begin("write")
		err := WriteFixed(res.File, res.Fix)
		timer.End(phase, "")
		switch {
		case err == nil:
			res.Written = true
		case errors.Is(err, fix.ErrNoChanges):
		default:
			res.Err = err
			res.Bag.Add(diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.IOWriteError,
				Message:  err.Error(),
				Primary:  source.Span{File: fileID},
				Token:    -1,
				Line:     1,
				Col:      1,
			})
		}
	}
	return res
}

func outcome(r *FileResult) string {
	switch {
	case r.Err != nil:
		return "error"
	case r.Cached:
		return "cached"
	case r.Fix != nil:
		return r.Fix.Outcome.String()
	}
	return "checked"
}

// WriteFixed writes the fixed content of res over file, in the original
// encoding and with the original BOM. It returns fix.ErrNoChanges when the
// content is unchanged.
func WriteFixed(file *source.File, res *fix.Result) error {
	if res == nil || !res.Changed() {
		return fix.ErrNoChanges
	}
	content, err := source.EncodeForWrite(file, []byte(res.Content()))
	if err != nil {
		return fmt.Errorf("%s: %w", file.Path, err)
	}
	return writeFileAtomic(filepath.FromSlash(file.Path), content)
}

// writeFileAtomic: временный файл рядом с целью и rename поверх неё.
func writeFileAtomic(path string, content []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
