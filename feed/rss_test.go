package feed

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kosehub/domain"
)

// articleStore stubs the repository port with canned rows per author.
type articleStore map[string][]domain.Article

func (s articleStore) InsertArticle(_ context.Context, a domain.Article) (domain.InsertResult, error) {
	s[a.Author] = append(s[a.Author], a)
	return domain.InsertCreated, nil
}

func (s articleStore) ListArticlesByAuthor(_ context.Context, author string) ([]domain.Article, error) {
	out := append([]domain.Article(nil), s[author]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s articleStore) CountArticles(context.Context) (int64, error) {
	var n int64
	for _, arts := range s {
		n += int64(len(arts))
	}
	return n, nil
}

var testAuthor = domain.Author{
	Name:   "A",
	Short:  "a",
	Link:   "http://x/a",
	Parser: domain.ParserNefes,
}

func TestBuildOrdersEntriesByDate(t *testing.T) {
	store := articleStore{"A": {
		{Author: "A", Date: "2024-01-06", Title: "İkinci", Link: "http://x/L2"},
		{Author: "A", Date: "2024-01-05", Title: "Birinci", Link: "http://x/L1"},
	}}
	b := NewBuilder(store, zap.NewNop())

	rss, err := b.Build(context.Background(), testAuthor)
	require.NoError(t, err)
	require.NotNil(t, rss)

	assert.Equal(t, "2.0", rss.Version)
	assert.Equal(t, "A", rss.Channel.Title)
	assert.Equal(t, "http://x/a", rss.Channel.Link)
	require.Len(t, rss.Channel.Items, 2)
	assert.Equal(t, "http://x/L1", rss.Channel.Items[0].Link)
	assert.Equal(t, "http://x/L2", rss.Channel.Items[1].Link)
	assert.Equal(t, "Fri, 05 Jan 2024 00:00:00 +0000", rss.Channel.Items[0].PubDate)
}

func TestBuildNoArticlesYieldsNoFeed(t *testing.T) {
	b := NewBuilder(articleStore{}, zap.NewNop())
	rss, err := b.Build(context.Background(), testAuthor)
	require.NoError(t, err)
	assert.Nil(t, rss, "empty author is reported, not an error")
}

func TestBuildSkipsUnparseableStoredDate(t *testing.T) {
	store := articleStore{"A": {
		{Author: "A", Date: "1970-13-99", Title: "Bozuk", Link: "http://x/bad"},
		{Author: "A", Date: "2024-01-05", Title: "Sağlam", Link: "http://x/good"},
	}}
	b := NewBuilder(store, zap.NewNop())

	rss, err := b.Build(context.Background(), testAuthor)
	require.NoError(t, err)
	require.NotNil(t, rss)
	require.Len(t, rss.Channel.Items, 1)
	assert.Equal(t, "http://x/good", rss.Channel.Items[0].Link)
}

func TestWriteFileCreatesParserDir(t *testing.T) {
	store := articleStore{"A": {
		{Author: "A", Date: "2024-01-05", Title: "T", Link: "http://x/L1"},
	}}
	b := NewBuilder(store, zap.NewNop())
	rss, err := b.Build(context.Background(), testAuthor)
	require.NoError(t, err)

	outDir := t.TempDir()
	path := FeedPath(outDir, testAuthor)
	assert.Equal(t, filepath.Join(outDir, "nefes", "a.xml"), path)
	require.NoError(t, rss.WriteFile(path))

	data, err := readFile(path)
	require.NoError(t, err)
	assert.Contains(t, data, "<?xml")
	assert.Contains(t, data, "<title>A</title>")
	assert.Contains(t, data, "http://x/L1")
}
