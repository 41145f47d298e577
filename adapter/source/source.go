// Package source holds the per-site extraction adapters. The set is closed:
// one adapter per supported site, dispatched by parser kind.
package source

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"kosehub/domain"
)

// Registry is the fixed adapter set. Lookup order matches registration order,
// which is also the ingestion order across parser kinds.
type Registry struct{ adapters []domain.SourceAdapter }

func NewRegistry(adapters ...domain.SourceAdapter) *Registry {
	return &Registry{adapters: adapters}
}

func (r *Registry) ForKind(kind domain.ParserKind) (domain.SourceAdapter, bool) {
	for _, a := range r.adapters {
		if a.Kind() == kind {
			return a, true
		}
	}
	return nil, false
}

func (r *Registry) All() []domain.SourceAdapter { return r.adapters }

func parseDoc(kind domain.ParserKind, markup []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, &domain.ExtractError{Kind: kind, Missing: "parseable markup"}
	}
	return doc, nil
}

// splitTail splits on the last slash, mirroring how the sites' author page
// URLs carry the page token last and the author slug before it.
func splitTail(s string) (head, tail string) {
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return "", s
	}
	return s[:i], s[i+1:]
}

func firstText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

func firstAttr(sel *goquery.Selection, name string) string {
	v, _ := sel.First().Attr(name)
	return v
}
