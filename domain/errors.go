package domain

import "fmt"

// FetchError wraps a transport failure for one URL. The affected author is
// skipped for the run; the next scheduled run retries naturally.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// ExtractError reports that a structural element an adapter relies on was
// absent from the fetched page.
type ExtractError struct {
	Kind    ParserKind
	Missing string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s: expected markup not found: %s", e.Kind, e.Missing)
}
