package driver

import (
	"codesniff/internal/diag"
	"codesniff/internal/source"
	"codesniff/internal/stream"
)

// TokenizeResult is the annotated stream of one file plus its lexical
// diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Stream  *stream.Stream
	Bag     *diag.Bag
}

// Tokenize loads path and builds its stream without running sniffs.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path, opts.Encoding)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	st := stream.New(file, stream.Options{TabWidth: opts.TabWidth})
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Merge(st.Diagnostics)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Stream:  st,
		Bag:     bag,
	}, nil
}
