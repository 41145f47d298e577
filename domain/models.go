package domain

// ParserKind identifies which source adapter understands a site's markup.
type ParserKind string

const (
	ParserNefes      ParserKind = "nefes"
	ParserEkonomim   ParserKind = "ekonomim"
	ParserCumhuriyet ParserKind = "cumhuriyet"
)

type Author struct {
	ID     int64
	Name   string
	Short  string
	Link   string
	Parser ParserKind
	Image  string
}

// Article is one observed column. Date is canonical YYYY-MM-DD; Link is the
// dedup key, globally unique in storage.
type Article struct {
	ID     int64
	Author string
	Date   string
	Title  string
	Desc   string
	Link   string
}

// RawArticle is what a source adapter pulls off one article card before
// normalization. Absent fields are zero values; the ingest pipeline decides
// what to store for them.
type RawArticle struct {
	Title   string
	Link    string
	RawDate string
}

// InsertResult reports whether a write created a row or hit an existing one.
// A duplicate is a success to callers, not a failure.
type InsertResult int

const (
	InsertCreated InsertResult = iota
	InsertDuplicate
)
