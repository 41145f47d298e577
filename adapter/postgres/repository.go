package postgres

import (
	"context"
	"database/sql"

	"kosehub/domain"
)

// Repository implements both persistence ports over one connection pool.
type Repository struct{ db *sql.DB }

func New(db *sql.DB) *Repository { return &Repository{db: db} }

func (r *Repository) Ensure(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS authors (
    id SERIAL PRIMARY KEY,
    author TEXT NOT NULL,
    short TEXT NOT NULL,
    link TEXT NOT NULL,
    parser TEXT NOT NULL,
    img TEXT NOT NULL DEFAULT '',
    UNIQUE (parser, short)
);
CREATE TABLE IF NOT EXISTS articles (
    id SERIAL PRIMARY KEY,
    author TEXT NOT NULL,
    date TEXT NOT NULL,
    title TEXT NOT NULL,
    descr TEXT NOT NULL DEFAULT '',
    link TEXT NOT NULL UNIQUE
);
`)
	return err
}

// InsertArticle attempts the write against the unique link key. A conflict is
// reported as InsertDuplicate with a nil error: re-ingestion is idempotent.
func (r *Repository) InsertArticle(ctx context.Context, a domain.Article) (domain.InsertResult, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (author, date, title, descr, link) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (link) DO NOTHING`,
		a.Author, a.Date, a.Title, a.Desc, a.Link)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return domain.InsertDuplicate, nil
	}
	return domain.InsertCreated, nil
}

// ListArticlesByAuthor returns the author's articles ascending by canonical
// date. The date column holds YYYY-MM-DD, so text order is date order.
func (r *Repository) ListArticlesByAuthor(ctx context.Context, author string) ([]domain.Article, error) {
	return scanArticles(r.db.QueryContext(ctx,
		`SELECT id, author, date, title, descr, link FROM articles WHERE author = $1 ORDER BY date ASC, id ASC`,
		author))
}

func (r *Repository) CountArticles(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n)
	return n, err
}

func (r *Repository) InsertAuthor(ctx context.Context, a domain.Author) (domain.InsertResult, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO authors (author, short, link, parser, img) VALUES ($1,$2,$3,$4,$5) ON CONFLICT (parser, short) DO NOTHING`,
		a.Name, a.Short, a.Link, string(a.Parser), a.Image)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return domain.InsertDuplicate, nil
	}
	return domain.InsertCreated, nil
}

func (r *Repository) ListAuthorsByParser(ctx context.Context, kind domain.ParserKind) ([]domain.Author, error) {
	return scanAuthors(r.db.QueryContext(ctx,
		`SELECT id, author, short, link, parser, img FROM authors WHERE parser = $1 ORDER BY id ASC`,
		string(kind)))
}

func (r *Repository) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	return scanAuthors(r.db.QueryContext(ctx,
		`SELECT id, author, short, link, parser, img FROM authors ORDER BY id ASC`))
}

func scanAuthors(rows *sql.Rows, err error) ([]domain.Author, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Author
	for rows.Next() {
		var a domain.Author
		var parser string
		if err := rows.Scan(&a.ID, &a.Name, &a.Short, &a.Link, &parser, &a.Image); err != nil {
			return nil, err
		}
		a.Parser = domain.ParserKind(parser)
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanArticles(rows *sql.Rows, err error) ([]domain.Article, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Author, &a.Date, &a.Title, &a.Desc, &a.Link); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
