// Package batch summarizes several trial-balance exports concurrently.
package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerlens/ledgerlens/internal/aggregate"
	"github.com/ledgerlens/ledgerlens/internal/classify"
	"github.com/ledgerlens/ledgerlens/internal/importer"
)

// DefaultLimit bounds how many files are parsed at once.
const DefaultLimit = 4

// Options controls a batch run.
type Options struct {
	Aggregate aggregate.Options
	Limit     int // <= 0 means DefaultLimit
}

// Result is the outcome for one file. Exactly one of Summary and Err is set.
type Result struct {
	File    string
	Summary *aggregate.Summary
	Err     error
}

// Name is the file's base name.
func (r Result) Name() string { return filepath.Base(r.File) }

// SummarizeFiles imports and aggregates each file. Results come back in the
// order of files. A file that cannot be parsed records its error in its Result
// and does not stop the others; the returned error is non-nil only when ctx
// is cancelled.
func SummarizeFiles(ctx context.Context, files []string, reg *importer.Registry, c *classify.Classifier, opts Options) ([]Result, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]Result, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range files {
		results[i].File = path
		// i and path are per-iteration (Go 1.22+); each goroutine owns results[i].
		i, path := i, path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rows, err := reg.ParseFile(path)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Summary = aggregate.Aggregate(rows, c, opts.Aggregate)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("summarizing files: %w", err)
	}
	return results, nil
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
