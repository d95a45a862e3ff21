package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/op/go-logging"
	"github.com/rdc-cli/rdc/internal/domain"
	"github.com/rdc-cli/rdc/internal/domain/drawdiff"
	"golang.org/x/sync/errgroup"
)

var log = logging.MustGetLogger("rdc.application")

// DiffOptions controls one draw diff run.
type DiffOptions struct {
	Align drawdiff.AlignOptions
	// Timeout bounds loading both captures. Zero means no limit.
	Timeout time.Duration
}

// DiffReport is the outcome of diffing two captures.
type DiffReport struct {
	CaptureA string
	CaptureB string
	Result   *domain.DrawDiffResult
	Summary  domain.Summary
}

// DiffService orchestrates the draw diff pipeline:
// load both captures -> build records -> align -> compare -> summarize.
type DiffService struct {
	source  domain.DrawSource
	history domain.DiffHistory
	git     domain.GitInfo
	now     func() time.Time
}

func NewDiffService(source domain.DrawSource, history domain.DiffHistory, git domain.GitInfo) *DiffService {
	return &DiffService{
		source:  source,
		history: history,
		git:     git,
		now:     time.Now,
	}
}

// Diff loads refA and refB concurrently and diffs their draws.
func (s *DiffService) Diff(ctx context.Context, refA, refB string, opts DiffOptions) (*DiffReport, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	// 1. Load both captures
	var rowsA, rowsB []map[string]any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.load(gctx, refA)
		if err != nil {
			return fmt.Errorf("loading capture A (%s): %w", refA, err)
		}
		rowsA = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.load(gctx, refB)
		if err != nil {
			return fmt.Errorf("loading capture B (%s): %w", refB, err)
		}
		rowsB = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 2. Align and compare
	result, err := drawdiff.DiffRows(rowsA, rowsB, opts.Align)
	if err != nil {
		return nil, fmt.Errorf("diffing draws: %w", err)
	}

	// 3. Summarize
	summary := drawdiff.Summarize(result)
	log.Infof("diffed %d vs %d draws (%s): %d changed",
		len(rowsA), len(rowsB), result.Mode, summary.Counts.Changed())

	return &DiffReport{
		CaptureA: refA,
		CaptureB: refB,
		Result:   result,
		Summary:  summary,
	}, nil
}

// load returns as soon as ctx is done, even if the source is still blocked
// reading. The source goroutine is then left to finish on its own; a read
// blocked on stdin lives until the process exits, which only suits a one-shot
// CLI run. Long-lived callers must pass sources that honour ctx.
func (s *DiffService) load(ctx context.Context, ref string) ([]map[string]any, error) {
	type loaded struct {
		rows []map[string]any
		err  error
	}
	ch := make(chan loaded, 1)
	go func() {
		rows, err := s.source.LoadDraws(ctx, ref)
		ch <- loaded{rows: rows, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case l := <-ch:
		return l.rows, l.err
	}
}

// Record appends a summary of report to the history under dir. The HEAD
// commit is attached when dir is inside a git repository.
func (s *DiffService) Record(dir string, report *DiffReport) (domain.DiffEntry, error) {
	entry := domain.DiffEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now().Format(time.RFC3339),
		CaptureA:  report.CaptureA,
		CaptureB:  report.CaptureB,
		Mode:      report.Summary.Mode,
		Counts:    report.Summary.Counts,
	}

	if s.git != nil && s.git.IsGitRepo(dir) {
		if hash, err := s.git.CommitHash(dir); err == nil {
			entry.CommitHash = hash
		} else {
			log.Debugf("no commit hash for %s: %v", dir, err)
		}
	}

	if err := s.history.Save(dir, entry); err != nil {
		return domain.DiffEntry{}, fmt.Errorf("saving diff history: %w", err)
	}
	return entry, nil
}

// History returns recorded runs under dir, oldest first. A positive limit keeps
// only the most recent entries.
func (s *DiffService) History(dir string, limit int) ([]domain.DiffEntry, error) {
	entries, err := s.history.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading diff history: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}
