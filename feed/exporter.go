package feed

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"kosehub/domain"
)

// Exporter regenerates every publishable artifact from current store
// contents: per-author feeds, the OPML outline and the HTML index. Always a
// full rebuild, never an incremental diff.
type Exporter struct {
	authors domain.AuthorDirectory
	builder *Builder
	site    string
	feedDir string
	outDir  string
	log     *zap.Logger
}

func NewExporter(authors domain.AuthorDirectory, builder *Builder, site, feedDir, outDir string, log *zap.Logger) *Exporter {
	return &Exporter{authors: authors, builder: builder, site: site, feedDir: feedDir, outDir: outDir, log: log}
}

func (e *Exporter) Generate(ctx context.Context) error {
	authors, err := e.authors.ListAuthors(ctx)
	if err != nil {
		return err
	}
	if len(authors) == 0 {
		e.log.Warn("no authors in directory, nothing to generate")
		return nil
	}
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return err
	}

	written := 0
	for _, a := range authors {
		rss, err := e.builder.Build(ctx, a)
		if err != nil {
			e.log.Error("feed build failed", zap.String("author", a.Name), zap.Error(err))
			continue
		}
		if rss == nil {
			continue
		}
		path := FeedPath(e.outDir, a)
		if err := rss.WriteFile(path); err != nil {
			e.log.Error("feed write failed", zap.String("path", path), zap.Error(err))
			continue
		}
		written++
		e.log.Info("feed written", zap.String("path", path), zap.Int("entries", len(rss.Channel.Items)))
	}

	outline := BuildOPML(authors, e.site, e.feedDir)
	opmlPath := filepath.Join(e.outDir, "index.opml")
	if err := outline.WriteFile(opmlPath); err != nil {
		return err
	}
	htmlPath := filepath.Join(e.outDir, "index.html")
	if err := outline.WriteHTMLFile(htmlPath); err != nil {
		return err
	}
	e.log.Info("index generated",
		zap.Int("authors", len(authors)), zap.Int("feeds", written),
		zap.String("opml", opmlPath), zap.String("html", htmlPath))
	return nil
}
