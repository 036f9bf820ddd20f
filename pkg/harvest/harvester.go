package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/japaniel/verbpractice/pkg/content"
)

// Page is the outcome of downloading and extracting one URL.
type Page struct {
	URL     string
	Article Article
	Err     error
}

// Harvester downloads several article pages concurrently and proposes
// example sentences from them.
type Harvester struct {
	Fetcher *Fetcher
	Workers int
	Logger  *slog.Logger
}

// NewHarvester returns a Harvester with a default Fetcher and four workers.
func NewHarvester(logger *slog.Logger) *Harvester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harvester{Fetcher: NewFetcher(), Workers: 4, Logger: logger}
}

// Collect fetches and extracts every URL. Pages come back in the order of
// urls; a failed page carries its error instead of an article.
func (h *Harvester) Collect(ctx context.Context, urls []string) ([]Page, error) {
	pages := make([]Page, len(urls))
	for i, u := range urls {
		pages[i].URL = u
	}
	if len(urls) == 0 {
		return pages, nil
	}

	workers := h.Workers
	if workers > len(urls) {
		workers = len(urls)
	}
	p := newPool(workers, len(urls))
	p.start(ctx)

	for i := range urls {
		page := &pages[i]
		err := p.submit(ctx, func(ctx context.Context) {
			page.Article, page.Err = h.fetchOne(ctx, page.URL)
		})
		if err != nil {
			p.close()
			return nil, err
		}
	}
	p.close()

	// Workers may have stopped early on cancellation, leaving pages untouched.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pages, nil
}

func (h *Harvester) fetchOne(ctx context.Context, u string) (Article, error) {
	f := h.Fetcher
	if f == nil {
		f = NewFetcher()
	}
	body, err := f.Fetch(ctx, u)
	if err != nil {
		return Article{}, err
	}
	return Extract(body, u)
}

// Harvest collects urls and runs FindExamples over the sentences of every
// page that could be read. It fails only when no page could be read.
func (h *Harvester) Harvest(ctx context.Context, urls []string, verbs []content.VerbRecord, limit int) ([]Match, error) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pages, err := h.Collect(ctx, urls)
	if err != nil {
		return nil, err
	}

	var (
		sentences []string
		failures  []error
	)
	for _, p := range pages {
		if p.Err != nil {
			logger.Warn("page skipped", "url", p.URL, "error", p.Err)
			failures = append(failures, fmt.Errorf("%s: %w", p.URL, p.Err))
			continue
		}
		split := SplitSentences(p.Article.Text)
		logger.Info("page read", "url", p.URL, "title", p.Article.Title, "sentences", len(split))
		sentences = append(sentences, split...)
	}
	if len(failures) > 0 && len(failures) == len(pages) {
		return nil, errors.Join(failures...)
	}

	return FindExamples(sentences, verbs, limit), nil
}
