// Package feed turns the store back into publishable artifacts: one RSS
// document per author, plus the OPML outline and HTML index over all authors.
package feed

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"kosehub/domain"
)

type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

type Channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Items       []Item `xml:"item"`
}

type Item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Builder renders one author's feed from stored articles.
type Builder struct {
	repo domain.ArticleRepository
	log  *zap.Logger
}

func NewBuilder(repo domain.ArticleRepository, log *zap.Logger) *Builder {
	return &Builder{repo: repo, log: log}
}

// Build returns the author's feed, entries ascending by date with pubDate at
// midnight UTC of the stored day. An author with no articles yields (nil, nil)
// and no artifact. Stored dates that no longer parse are skipped with a
// warning; the store is append-only, so whatever got in stays in.
func (b *Builder) Build(ctx context.Context, author domain.Author) (*RSS, error) {
	articles, err := b.repo.ListArticlesByAuthor(ctx, author.Name)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		b.log.Info("no articles, skipping feed", zap.String("author", author.Name))
		return nil, nil
	}

	ch := Channel{
		Title:       author.Name,
		Link:        author.Link,
		Description: author.Name + " tarafından yazılan tüm köşe yazıları",
	}
	for _, a := range articles {
		day, err := time.Parse("2006-01-02", a.Date)
		if err != nil {
			b.log.Warn("stored date does not parse, skipping entry",
				zap.String("author", author.Name), zap.String("title", a.Title), zap.String("date", a.Date))
			continue
		}
		ch.Items = append(ch.Items, Item{
			Title:       a.Title,
			Link:        a.Link,
			Description: a.Desc,
			PubDate:     day.UTC().Format(time.RFC1123Z),
		})
	}
	return &RSS{Version: "2.0", Channel: ch}, nil
}

// FeedPath is the deterministic on-disk location of one author's feed.
func FeedPath(outDir string, author domain.Author) string {
	return filepath.Join(outDir, string(author.Parser), author.Short+".xml")
}

// WriteFile serializes the feed to its path, creating directories as needed.
func (r *RSS) WriteFile(path string) error {
	data, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), data...), 0o644)
}
