// Package batch extracts many VCF files concurrently while reporting
// results in input order.
package batch

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/vcfsplit/internal/vcf"
)

// ExtractFunc extracts a single file. vcf.ExtractFile is the default.
type ExtractFunc func(path string) (*vcf.File, error)

// Result is the outcome for one input path. File may be non-nil even when
// Err is set, when some body lines were malformed.
type Result struct {
	Seq  int
	Path string
	File *vcf.File
	Err  error
}

// Processor runs an ExtractFunc over a list of paths with a bounded pool.
type Processor struct {
	workers int
	extract ExtractFunc
	logger  *zap.Logger
}

// NewProcessor creates a processor. If workers is 0, runtime.NumCPU() is used.
func NewProcessor(workers int) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{
		workers: workers,
		extract: vcf.ExtractFile,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for per-file warnings.
func (p *Processor) SetLogger(l *zap.Logger) {
	p.logger = l
}

// SetExtractFunc replaces the per-file extraction.
func (p *Processor) SetExtractFunc(fn ExtractFunc) {
	p.extract = fn
}

// Workers returns the pool size.
func (p *Processor) Workers() int {
	return p.workers
}

// Run extracts every path and calls fn once per path in input order.
// A failing file never stops the batch; only an error from fn or a
// cancelled ctx does. Paths not started before cancellation are reported
// with ctx.Err(), and an error from fn skips every path not yet started.
func (p *Processor) Run(ctx context.Context, paths []string, fn func(Result) error) error {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan Result, 2*p.workers)

	go func() {
		var g errgroup.Group
		g.SetLimit(p.workers)

		for i, path := range paths {
			g.Go(func() error {
				if err := workCtx.Err(); err != nil {
					results <- Result{Seq: i, Path: path, Err: err}
					return nil
				}
				f, err := p.extract(path)
				results <- Result{Seq: i, Path: path, File: f, Err: err}
				return nil
			})
		}

		g.Wait()
		close(results)
	}()

	if err := OrderedCollect(results, func(r Result) error {
		p.logResult(r)
		if err := fn(r); err != nil {
			cancel()
			return err
		}
		return nil
	}); err != nil {
		return err
	}

	return ctx.Err()
}

// Process extracts every path and collects the results into a Report.
func (p *Processor) Process(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{Results: make([]Result, 0, len(paths))}
	err := p.Run(ctx, paths, func(r Result) error {
		report.Results = append(report.Results, r)
		return nil
	})
	return report, err
}

func (p *Processor) logResult(r Result) {
	if r.Err != nil {
		p.logger.Warn("failed to process file",
			zap.String("path", r.Path),
			zap.Bool("partial", r.File != nil),
			zap.Error(r.Err))
	}
	if r.File == nil {
		return
	}
	if r.File.ColumnHeaderLines > 1 {
		p.logger.Warn("multiple #CHROM lines, keeping the first",
			zap.String("path", r.Path),
			zap.Int("count", r.File.ColumnHeaderLines))
	}
	p.logger.Debug("processed file",
		zap.String("path", r.Path),
		zap.Int("meta_lines", r.File.Meta.Len()),
		zap.Int("records", len(r.File.Records)),
		zap.Int("malformed", len(r.File.Malformed)))
}

// OrderedCollect hands file results to fn in the order their paths were
// given. A file that finishes early waits until every path before it has
// been delivered. If fn fails, the rest of the channel is discarded and the
// error returned.
func OrderedCollect(results <-chan Result, fn func(Result) error) error {
	pending := make(map[int]Result)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Workers block on the channel until it is drained.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// Report holds the results of a batch in input order.
type Report struct {
	Results []Result
}

// Failed returns the (path, error) pairs of files that reported an error.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Files returns every extracted file, including partially extracted ones.
func (r *Report) Files() []*vcf.File {
	var files []*vcf.File
	for _, res := range r.Results {
		if res.File != nil {
			files = append(files, res.File)
		}
	}
	return files
}
