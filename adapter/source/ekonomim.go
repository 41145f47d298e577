package source

import (
	"github.com/PuerkitoBio/goquery"

	"kosehub/domain"
)

// Ekonomim extracts from ekonomim.com. Listing cards are bootstrap grid cells;
// links are absolute.
type Ekonomim struct{}

func NewEkonomim() *Ekonomim { return &Ekonomim{} }

func (*Ekonomim) Kind() domain.ParserKind { return domain.ParserEkonomim }

func (e *Ekonomim) ExtractArticles(markup []byte) (string, []domain.RawArticle, error) {
	doc, err := parseDoc(e.Kind(), markup)
	if err != nil {
		return "", nil, err
	}
	author := firstText(doc.Find("h2.name"))

	var items []domain.RawArticle
	doc.Find("div.col-12.col-sm-6.item").Each(func(_ int, card *goquery.Selection) {
		var item domain.RawArticle
		if link := card.Find("a[href]").First(); link.Length() > 0 {
			item.Title = firstAttr(link, "title")
			item.Link = firstAttr(link, "href")
		}
		item.RawDate = firstText(card.Find("span.date"))
		items = append(items, item)
	})
	return author, items, nil
}

func (e *Ekonomim) ExtractAuthors(markup []byte) ([]domain.Author, error) {
	doc, err := parseDoc(e.Kind(), markup)
	if err != nil {
		return nil, err
	}
	var out []domain.Author
	doc.Find("div.col-12.col-md-4.col-lg-3.d-xl-flex.d-lg-flex").Each(func(_ int, card *goquery.Selection) {
		href := firstAttr(card.Find("a[href]"), "href")
		page, _ := splitTail(href)
		_, short := splitTail(page)
		out = append(out, domain.Author{
			Name:   firstText(card.Find("span.name")),
			Short:  short,
			Link:   href,
			Parser: e.Kind(),
			Image:  firstAttr(card.Find("img"), "src"),
		})
	})
	return out, nil
}
