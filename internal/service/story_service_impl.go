package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/cuesheet/internal/domain"
	"github.com/alexanderramin/cuesheet/internal/intelligence"
	"github.com/alexanderramin/cuesheet/internal/sheet"
)

// MaxStoryConcurrency caps parallel completion calls for one spreadsheet.
const MaxStoryConcurrency = 8

// StoryOptions tunes a StoryService.
type StoryOptions struct {
	// Concurrency is the number of rows generated at once. Values <= 1 run
	// rows one at a time in input order.
	Concurrency int

	// Progress, if set, is called after each generated row with the
	// number of finished non-blank rows and their total. It may be called
	// from several goroutines.
	Progress func(done, total int)
}

type storyService struct {
	writer   intelligence.StoryWriter
	opts     StoryOptions
	observer UseCaseObserver
}

func NewStoryService(writer intelligence.StoryWriter, opts StoryOptions, observers ...UseCaseObserver) StoryService {
	opts.Concurrency = domain.ClampInt(opts.Concurrency, 1, MaxStoryConcurrency)
	return &storyService{
		writer:   writer,
		opts:     opts,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *storyService) Generate(ctx context.Context, problems []string) (rows []domain.StoryRow, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"row_count":   len(problems),
		"concurrency": s.opts.Concurrency,
	}
	defer func() {
		observe(ctx, s.observer, "generate-stories", startedAt, fields, err)
	}()

	// Output slot i always belongs to input row i.
	stories := make([]string, len(problems))
	pending := make([]int, 0, len(problems))
	for i, p := range problems {
		if strings.TrimSpace(p) != "" {
			pending = append(pending, i)
		}
	}
	fields["call_count"] = len(pending)

	var done atomic.Int32
	write := func(ctx context.Context, i int) error {
		story, err := s.writer.Write(ctx, problems[i])
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		stories[i] = story
		if s.opts.Progress != nil {
			s.opts.Progress(int(done.Add(1)), len(pending))
		}
		return nil
	}

	if s.opts.Concurrency <= 1 {
		for _, i := range pending {
			if err = write(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.Concurrency)
		for _, i := range pending {
			g.Go(func() error { return write(gctx, i) })
		}
		if err = g.Wait(); err != nil {
			return nil, err
		}
	}

	rows = make([]domain.StoryRow, len(problems))
	for i, p := range problems {
		rows[i] = domain.StoryRow{Problem: p, Story: stories[i]}
	}
	return rows, nil
}

func (s *storyService) Process(ctx context.Context, r io.Reader, filename string) (*StoryResult, error) {
	problems, err := sheet.ReadColumn(r, filename, domain.ProblemColumn)
	if err != nil {
		return nil, err
	}

	rows, err := s.Generate(ctx, problems)
	if err != nil {
		return nil, err
	}

	data, err := sheet.WriteTable(rows)
	if err != nil {
		return nil, fmt.Errorf("rendering output table: %w", err)
	}
	return &StoryResult{Rows: rows, Data: data}, nil
}
