package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kosehub/adapter/source"
	"kosehub/domain"
	"kosehub/internal/config"
)

// memStore is an in-memory stand-in for both persistence ports, enforcing the
// same uniqueness rules as the real schema.
type memStore struct {
	mu       sync.Mutex
	articles map[string]domain.Article // keyed by link
	authors  []domain.Author
	nextID   int64
	failNext error
}

func newMemStore() *memStore {
	return &memStore{articles: make(map[string]domain.Article)}
}

func (m *memStore) InsertArticle(_ context.Context, a domain.Article) (domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return 0, err
	}
	if _, ok := m.articles[a.Link]; ok {
		return domain.InsertDuplicate, nil
	}
	m.nextID++
	a.ID = m.nextID
	m.articles[a.Link] = a
	return domain.InsertCreated, nil
}

func (m *memStore) ListArticlesByAuthor(_ context.Context, author string) ([]domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Article
	for _, a := range m.articles {
		if a.Author == author {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) CountArticles(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.articles)), nil
}

func (m *memStore) InsertAuthor(_ context.Context, a domain.Author) (domain.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, got := range m.authors {
		if got.Parser == a.Parser && got.Short == a.Short {
			return domain.InsertDuplicate, nil
		}
	}
	m.nextID++
	a.ID = m.nextID
	m.authors = append(m.authors, a)
	return domain.InsertCreated, nil
}

func (m *memStore) ListAuthorsByParser(_ context.Context, kind domain.ParserKind) ([]domain.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Author
	for _, a := range m.authors {
		if a.Parser == kind {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) ListAuthors(context.Context) ([]domain.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Author(nil), m.authors...), nil
}

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	page, ok := f.pages[url]
	if !ok {
		return nil, &domain.FetchError{URL: url, Err: errors.New("connection refused")}
	}
	return []byte(page), nil
}

const authorPage = `
<html><body>
<div class="author-name">A</div>
<article class="article-card">
  <a href="http://x/L1" title="Yazı Bir"></a>
  <time>5 Ocak 2024</time>
</article>
<article class="article-card">
  <a href="http://x/L2" title="Yazı İki"></a>
  <time>6 Ocak 2024</time>
</article>
</body></html>`

func newTestIngestor(store *memStore, fetcher *fakeFetcher) *Ingestor {
	reg := source.NewRegistry(source.NewNefes(), source.NewEkonomim(), source.NewCumhuriyet("https://www.cumhuriyet.com.tr"))
	return NewIngestor(store, store, fetcher, reg, zap.NewNop())
}

func TestRunIngestsAndRerunIsIdempotent(t *testing.T) {
	store := newMemStore()
	store.authors = []domain.Author{{ID: 1, Name: "A", Short: "a", Link: "http://x/a", Parser: domain.ParserNefes}}
	fetcher := &fakeFetcher{pages: map[string]string{"http://x/a": authorPage}}
	ing := newTestIngestor(store, fetcher)

	stats, err := ing.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 0, stats.Duplicates)

	n, _ := store.CountArticles(context.Background())
	assert.EqualValues(t, 2, n)
	arts, err := store.ListArticlesByAuthor(context.Background(), "A")
	require.NoError(t, err)
	require.Len(t, arts, 2)
	assert.Equal(t, "2024-01-05", arts[0].Date)
	assert.Equal(t, "http://x/L1", arts[0].Link)
	assert.Equal(t, "2024-01-06", arts[1].Date)

	// identical markup on rerun: no new rows
	stats, err = ing.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 2, stats.Duplicates)
	n, _ = store.CountArticles(context.Background())
	assert.EqualValues(t, 2, n)
}

func TestRunSkipsAuthorOnFetchFailure(t *testing.T) {
	store := newMemStore()
	store.authors = []domain.Author{
		{ID: 1, Name: "Down", Short: "down", Link: "http://x/down", Parser: domain.ParserNefes},
		{ID: 2, Name: "A", Short: "a", Link: "http://x/a", Parser: domain.ParserNefes},
	}
	fetcher := &fakeFetcher{pages: map[string]string{"http://x/a": authorPage}}
	ing := newTestIngestor(store, fetcher)

	stats, err := ing.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AuthorsFetched, "unreachable author skipped, run continues")
	assert.Equal(t, 2, stats.Inserted)
}

func TestRunSkipsRecordOnBadDate(t *testing.T) {
	page := `
<html><body>
<div class="author-name">A</div>
<article class="article-card">
  <a href="http://x/bad" title="Bozuk"></a>
  <time>5 Smarch 2024</time>
</article>
<article class="article-card">
  <a href="http://x/good" title="Sağlam"></a>
  <time>5 Ocak 2024</time>
</article>
</body></html>`
	store := newMemStore()
	store.authors = []domain.Author{{ID: 1, Name: "A", Short: "a", Link: "http://x/a", Parser: domain.ParserNefes}}
	ing := newTestIngestor(store, &fakeFetcher{pages: map[string]string{"http://x/a": page}})

	stats, err := ing.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 1, stats.Skipped)

	arts, _ := store.ListArticlesByAuthor(context.Background(), "A")
	require.Len(t, arts, 1)
	assert.Equal(t, "http://x/good", arts[0].Link)
}

func TestRunStoresUnknownAuthorWhenBlockMissing(t *testing.T) {
	page := `
<html><body>
<article class="article-card">
  <a href="http://x/L1" title="Yazı"></a>
  <time>5 Ocak 2024</time>
</article>
</body></html>`
	store := newMemStore()
	store.authors = []domain.Author{{ID: 1, Name: "A", Short: "a", Link: "http://x/a", Parser: domain.ParserNefes}}
	ing := newTestIngestor(store, &fakeFetcher{pages: map[string]string{"http://x/a": page}})

	_, err := ing.Run(context.Background())
	require.NoError(t, err)

	arts, _ := store.ListArticlesByAuthor(context.Background(), "Unknown")
	require.Len(t, arts, 1)
	assert.Equal(t, "http://x/L1", arts[0].Link)
}

func TestRunContinuesAfterStorageFailure(t *testing.T) {
	store := newMemStore()
	store.authors = []domain.Author{{ID: 1, Name: "A", Short: "a", Link: "http://x/a", Parser: domain.ParserNefes}}
	store.failNext = errors.New("disk full")
	ing := newTestIngestor(store, &fakeFetcher{pages: map[string]string{"http://x/a": authorPage}})

	stats, err := ing.Run(context.Background())
	require.NoError(t, err, "a failed write abandons the record, not the run")
	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 1, stats.Skipped)
}

func TestApplyDefaults(t *testing.T) {
	a, err := applyDefaults("Unknown", domain.RawArticle{})
	require.NoError(t, err)
	assert.Equal(t, "No Title", a.Title)
	assert.Equal(t, "#", a.Link)
	assert.Equal(t, "1970-01-01", a.Date)
	assert.Equal(t, "Unknown", a.Author)

	a, err = applyDefaults("A", domain.RawArticle{Title: "T", Link: "http://x/1", RawDate: "5 Ocak 2024"})
	require.NoError(t, err)
	assert.Equal(t, domain.Article{Author: "A", Date: "2024-01-05", Title: "T", Link: "http://x/1"}, a)

	_, err = applyDefaults("A", domain.RawArticle{RawDate: "not a date"})
	require.Error(t, err)
}

func TestDiscoverIsIdempotent(t *testing.T) {
	listing := `
<html><body>
<article class="card-author">
  <a href="http://x/yazarlar/a/1"></a>
  <span>A</span>
</article>
</body></html>`
	store := newMemStore()
	fetcher := &fakeFetcher{pages: map[string]string{"http://x/yazarlar": listing}}
	ing := newTestIngestor(store, fetcher)
	sources := &config.Sources{Sources: map[string]config.Source{
		"nefes": {Listing: "http://x/yazarlar"},
	}}

	require.NoError(t, ing.Discover(context.Background(), sources))
	require.NoError(t, ing.Discover(context.Background(), sources))

	authors, err := store.ListAuthorsByParser(context.Background(), domain.ParserNefes)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "a", authors[0].Short)
}
