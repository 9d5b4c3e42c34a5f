package scan

import (
	"context"
	"encoding/hex"
	"log/slog"
	"os"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/mkoster/codeatlas/internal/parser"
)

// FileParser is the structural-parser capability consumed by the parse
// stage and the scope builder.
type FileParser interface {
	ParseFile(path string, detailed bool) *parser.Result
}

// TreeSitterParser adapts the parser package to the FileParser contract.
type TreeSitterParser struct{}

func (TreeSitterParser) ParseFile(path string, detailed bool) *parser.Result {
	return parser.ParseFile(path, detailed)
}

// FileParse is the per-file outcome of the parse stage. Err is recorded,
// never propagated; failed files are excluded from edge construction.
type FileParse struct {
	RelPath string
	Imports []string
	Hash    string // xxh3 of the file content, for change detection
	Err     string
}

// Progress reports completed/total parse counts.
type Progress func(current, total int, message string)

// ParseAll parses every discovered file concurrently in non-detailed mode
// (imports only). One worker slot per file; a single file's failure never
// aborts the batch. Progress is throttled to every Nth completion.
func ParseAll(ctx context.Context, p FileParser, files []FileInfo, workers, progressEvery int, cb Progress) map[string]*FileParse {
	if workers < 1 {
		workers = 1
	}
	if progressEvery < 1 {
		progressEvery = 1
	}

	results := make([]*FileParse, len(files))
	done := make(chan int, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = parseOne(p, f)
			done <- i
			return nil
		})
	}

	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		completed := 0
		for range done {
			completed++
			if cb != nil && completed%progressEvery == 0 {
				cb(completed, len(files), "parsing imports")
			}
		}
	}()

	_ = g.Wait()
	close(done)
	<-reporterDone

	out := make(map[string]*FileParse, len(files))
	failed := 0
	for i, f := range files {
		r := results[i]
		if r == nil {
			r = &FileParse{RelPath: f.RelPath, Err: "cancelled"}
		}
		if r.Err != "" {
			failed++
		}
		out[f.RelPath] = r
	}
	if failed > 0 {
		slog.Info("scan.parse_errors", "failed", failed, "total", len(files))
	}
	if cb != nil {
		cb(len(files), len(files), "parse complete")
	}
	return out
}

func parseOne(p FileParser, f FileInfo) *FileParse {
	fp := &FileParse{RelPath: f.RelPath}

	res := p.ParseFile(f.Path, false)
	if res.Err != "" {
		fp.Err = res.Err
		return fp
	}
	fp.Imports = res.Imports

	if data, err := os.ReadFile(f.Path); err == nil {
		sum := xxh3.Hash128(data).Bytes()
		fp.Hash = hex.EncodeToString(sum[:])
	}
	return fp
}
