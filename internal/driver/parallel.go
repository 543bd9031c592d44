package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"codesniff/internal/source"
	"codesniff/internal/trace"
)

// Selector decides which files of a directory tree are checked.
// config.Config implements it.
type Selector interface {
	Matches(path string) bool
	Excluded(path string) bool
}

// ListFiles expands targets into a sorted list of files. Files named
// explicitly are always kept; directories are walked and filtered by sel.
func ListFiles(targets []string, sel Selector) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if sel != nil && sel.Excluded(path) {
				if d.IsDir() && path != target {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && (sel == nil || sel.Matches(path)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// RunFiles processes files in parallel. Results keep the order of files.
// Cancellation is checked between files; a file already started runs to
// the end.
func RunFiles(ctx context.Context, files []string, opts Options) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "run")
	defer span.End("")

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = ProcessFile(gctx, fileSet, path, opts)
			if opts.Progress != nil {
				opts.Progress(results[i])
			}
			return nil
		})
	}

	// Ждём завершения всех горутин
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// RunDir lists targets through sel and processes the files.
func RunDir(ctx context.Context, targets []string, sel Selector, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(targets, sel)
	if err != nil {
		return nil, nil, err
	}
	return RunFiles(ctx, files, opts)
}
