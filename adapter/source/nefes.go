package source

import (
	"github.com/PuerkitoBio/goquery"

	"kosehub/domain"
)

// Nefes extracts from nefes.com.tr. Article links are absolute; the title
// rides on the link tag's title attribute.
type Nefes struct{}

func NewNefes() *Nefes { return &Nefes{} }

func (*Nefes) Kind() domain.ParserKind { return domain.ParserNefes }

func (n *Nefes) ExtractArticles(markup []byte) (string, []domain.RawArticle, error) {
	doc, err := parseDoc(n.Kind(), markup)
	if err != nil {
		return "", nil, err
	}
	author := firstText(doc.Find("div.author-name"))

	var items []domain.RawArticle
	doc.Find("article.article-card").Each(func(_ int, card *goquery.Selection) {
		var item domain.RawArticle
		if link := card.Find("a[href]").First(); link.Length() > 0 {
			item.Title = firstAttr(link, "title")
			item.Link = firstAttr(link, "href")
		}
		item.RawDate = firstText(card.Find("time"))
		items = append(items, item)
	})
	return author, items, nil
}

func (n *Nefes) ExtractAuthors(markup []byte) ([]domain.Author, error) {
	doc, err := parseDoc(n.Kind(), markup)
	if err != nil {
		return nil, err
	}
	var out []domain.Author
	doc.Find("article.card-author").Each(func(_ int, card *goquery.Selection) {
		href := firstAttr(card.Find("a[href]"), "href")
		// the href ends in a page token; the author page is its parent and
		// the slug before that is the short id
		page, _ := splitTail(href)
		_, short := splitTail(page)
		out = append(out, domain.Author{
			Name:   firstText(card.Find("span")),
			Short:  short,
			Link:   page,
			Parser: n.Kind(),
			Image:  firstAttr(card.Find("img"), "src"),
		})
	})
	return out, nil
}
