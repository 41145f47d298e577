package feed

import (
	"encoding/xml"
	"os"
	"strings"

	"kosehub/domain"
)

type OPML struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

type Head struct {
	Title string `xml:"title"`
}

type Body struct {
	Outlines []Outline `xml:"outline"`
}

// Outline is one node of the outline tree. Leaves carry a feed URL; internal
// nodes only group children.
type Outline struct {
	Text     string    `xml:"text,attr"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	Outlines []Outline `xml:"outline,omitempty"`
}

// FeedURL resolves an author's public feed address under the site domain.
func FeedURL(site, feedDir string, author domain.Author) string {
	return strings.TrimSuffix(site, "/") + "/" + feedDir + "/" + string(author.Parser) + "/" + author.Short + ".xml"
}

// BuildOPML rebuilds the full outline from the current author set.
func BuildOPML(authors []domain.Author, site, feedDir string) *OPML {
	doc := &OPML{
		Version: "2.0",
		Head:    Head{Title: "Köşe Yazarları RSS Listesi"},
	}
	for _, a := range authors {
		doc.Body.Outlines = append(doc.Body.Outlines, Outline{
			Text:   a.Name,
			Type:   "link",
			XMLURL: FeedURL(site, feedDir, a),
		})
	}
	return doc
}

func (o *OPML) WriteFile(path string) error {
	data, err := xml.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), data...), 0o644)
}
