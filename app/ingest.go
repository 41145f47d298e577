package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"kosehub/adapter/source"
	"kosehub/domain"
	"kosehub/internal/config"
	"kosehub/internal/turkdate"
)

// Placeholders stored when a card lacks a field. Applied in exactly one place
// (applyDefaults) so the store-placeholder-vs-skip decision has a single
// switch point.
const (
	noTitle       = "No Title"
	noLink        = "#"
	unknownAuthor = "Unknown"
	epochDate     = "1970-01-01"
)

// RunStats summarizes one ingest pass.
type RunStats struct {
	AuthorsFetched int
	Inserted       int
	Duplicates     int
	Skipped        int
}

// Ingestor drives discovery and ingestion: authors from the directory, markup
// via the fetcher, records via the adapter matching each author's parser
// kind, dates through the normalizer, articles into the repository. Strictly
// sequential; every failure is scoped to one author or one record.
type Ingestor struct {
	articles domain.ArticleRepository
	authors  domain.AuthorDirectory
	fetcher  domain.Fetcher
	registry *source.Registry
	log      *zap.Logger
}

func NewIngestor(articles domain.ArticleRepository, authors domain.AuthorDirectory, fetcher domain.Fetcher, registry *source.Registry, log *zap.Logger) *Ingestor {
	return &Ingestor{articles: articles, authors: authors, fetcher: fetcher, registry: registry, log: log}
}

// Discover scrapes each configured listing page and records the authors it
// finds. Inserts hitting the (parser, short) key are no-ops, so rerunning
// discovery never duplicates rows.
func (ing *Ingestor) Discover(ctx context.Context, sources *config.Sources) error {
	for _, adapter := range ing.registry.All() {
		kind := adapter.Kind()
		src, ok := sources.ForKind(kind)
		if !ok || src.Listing == "" {
			ing.log.Warn("no listing configured", zap.String("parser", string(kind)))
			continue
		}
		markup, err := ing.fetcher.Fetch(ctx, src.Listing)
		if err != nil {
			ing.log.Error("listing fetch failed", zap.String("parser", string(kind)), zap.Error(err))
			continue
		}
		authors, err := adapter.ExtractAuthors(markup)
		if err != nil {
			ing.log.Error("listing extraction failed", zap.String("parser", string(kind)), zap.Error(err))
			continue
		}
		for _, a := range authors {
			res, err := ing.authors.InsertAuthor(ctx, a)
			if err != nil {
				ing.log.Error("author insert failed", zap.String("author", a.Name), zap.Error(err))
				continue
			}
			if res == domain.InsertCreated {
				ing.log.Info("author added", zap.String("author", a.Name), zap.String("parser", string(kind)))
			}
		}
	}
	return ctx.Err()
}

// Run executes one full ingest pass across all parser kinds.
func (ing *Ingestor) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats
	for _, adapter := range ing.registry.All() {
		kind := adapter.Kind()
		authors, err := ing.authors.ListAuthorsByParser(ctx, kind)
		if err != nil {
			// losing the store aborts the whole pass
			return stats, err
		}
		for _, a := range authors {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			ing.ingestAuthor(ctx, adapter, a, &stats)
		}
	}
	ing.log.Info("ingest pass complete",
		zap.Int("authors", stats.AuthorsFetched),
		zap.Int("inserted", stats.Inserted),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("skipped", stats.Skipped))
	return stats, nil
}

func (ing *Ingestor) ingestAuthor(ctx context.Context, adapter domain.SourceAdapter, a domain.Author, stats *RunStats) {
	log := ing.log.With(zap.String("author", a.Name), zap.String("parser", string(a.Parser)))

	markup, err := ing.fetcher.Fetch(ctx, a.Link)
	if err != nil {
		log.Error("fetch failed, skipping author", zap.Error(err))
		return
	}
	name, items, err := adapter.ExtractArticles(markup)
	if err != nil {
		log.Error("extraction failed, skipping author", zap.Error(err))
		return
	}
	stats.AuthorsFetched++

	author := name
	if author == "" {
		author = unknownAuthor
	}
	for _, raw := range items {
		article, err := applyDefaults(author, raw)
		if err != nil {
			var ferr *turkdate.FormatError
			if errors.As(err, &ferr) {
				log.Warn("unparseable date, skipping record", zap.String("date", ferr.Input), zap.String("link", raw.Link))
			} else {
				log.Warn("skipping record", zap.Error(err))
			}
			stats.Skipped++
			continue
		}
		res, err := ing.articles.InsertArticle(ctx, article)
		if err != nil {
			log.Error("article insert failed", zap.String("link", article.Link), zap.Error(err))
			stats.Skipped++
			continue
		}
		switch res {
		case domain.InsertCreated:
			stats.Inserted++
			log.Info("article added", zap.String("title", article.Title), zap.String("date", article.Date))
		case domain.InsertDuplicate:
			stats.Duplicates++
		}
	}
}

// applyDefaults turns one raw record into a storable article, filling absent
// fields with their placeholders and normalizing the date. A present but
// unparseable date fails the record.
func applyDefaults(author string, raw domain.RawArticle) (domain.Article, error) {
	article := domain.Article{
		Author: author,
		Title:  raw.Title,
		Link:   raw.Link,
		Date:   epochDate,
	}
	if article.Title == "" {
		article.Title = noTitle
	}
	if article.Link == "" {
		article.Link = noLink
	}
	if raw.RawDate != "" {
		date, err := turkdate.Normalize(raw.RawDate)
		if err != nil {
			return domain.Article{}, err
		}
		article.Date = date
	}
	return article, nil
}
