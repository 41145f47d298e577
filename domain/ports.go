package domain

import (
	"context"
	"time"
)

// ArticleRepository is the persistence port for articles. InsertArticle is an
// attempt against the unique link key: a conflict comes back as
// InsertDuplicate with a nil error.
type ArticleRepository interface {
	InsertArticle(ctx context.Context, a Article) (InsertResult, error)
	ListArticlesByAuthor(ctx context.Context, author string) ([]Article, error)
	CountArticles(ctx context.Context) (int64, error)
}

// AuthorDirectory is the persistence port for discovered authors.
type AuthorDirectory interface {
	InsertAuthor(ctx context.Context, a Author) (InsertResult, error)
	ListAuthorsByParser(ctx context.Context, kind ParserKind) ([]Author, error)
	ListAuthors(ctx context.Context) ([]Author, error)
}

// Fetcher retrieves raw markup for one URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SourceAdapter translates one site's markup into normalized records.
// ExtractArticles returns the author name as printed on the page ("" when the
// author block is missing) and one RawArticle per discovered card.
type SourceAdapter interface {
	Kind() ParserKind
	ExtractArticles(markup []byte) (author string, items []RawArticle, err error)
	ExtractAuthors(markup []byte) ([]Author, error)
}

// Runner exposes application-level controls for the background fetch process.
type Runner interface {
	Start(ctx context.Context) error
	Stop() error

	SetInterval(d time.Duration)
	CurrentInterval() time.Duration
	TriggerRun()
}
