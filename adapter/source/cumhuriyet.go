package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kosehub/domain"
)

// Cumhuriyet extracts from cumhuriyet.com.tr. Links and images are relative
// and need the base URL prefixed; the article list lives in one ul.yazilar
// container whose absence fails the whole page; dates carry trailing text
// (weekday name) after the day month year tokens.
type Cumhuriyet struct{ base string }

func NewCumhuriyet(baseURL string) *Cumhuriyet {
	return &Cumhuriyet{base: strings.TrimSuffix(baseURL, "/")}
}

func (*Cumhuriyet) Kind() domain.ParserKind { return domain.ParserCumhuriyet }

func (c *Cumhuriyet) ExtractArticles(markup []byte) (string, []domain.RawArticle, error) {
	doc, err := parseDoc(c.Kind(), markup)
	if err != nil {
		return "", nil, err
	}
	author := firstText(doc.Find("div.adi"))

	container := doc.Find("ul.yazilar").First()
	if container.Length() == 0 {
		return author, nil, &domain.ExtractError{Kind: c.Kind(), Missing: "ul.yazilar"}
	}

	var items []domain.RawArticle
	container.Find("li").Each(func(_ int, card *goquery.Selection) {
		var item domain.RawArticle
		if link := card.Find("a[href]").First(); link.Length() > 0 {
			item.Link = c.base + firstAttr(link, "href")
		}
		item.Title = firstText(card.Find("span.baslik"))
		item.RawDate = trimDate(firstText(card.Find("span.tarih")))
		items = append(items, item)
	})
	return author, items, nil
}

func (c *Cumhuriyet) ExtractAuthors(markup []byte) ([]domain.Author, error) {
	doc, err := parseDoc(c.Kind(), markup)
	if err != nil {
		return nil, err
	}
	var out []domain.Author
	doc.Find("div.kose-yazisi-ust").Each(func(_ int, card *goquery.Selection) {
		href := firstAttr(card.Find("a[href]"), "href")
		page, _ := splitTail(href)
		_, short := splitTail(page)
		a := domain.Author{
			Name:   firstText(card.Find("div.adi")),
			Short:  short,
			Link:   c.base + page,
			Parser: c.Kind(),
		}
		if img := firstAttr(card.Find("img"), "src"); img != "" {
			a.Image = c.base + img
		}
		out = append(out, a)
	})
	return out, nil
}

// trimDate keeps the day, month and year tokens and drops whatever the site
// appends after them.
func trimDate(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) < 3 {
		return raw
	}
	return strings.Join(fields[:3], " ")
}
