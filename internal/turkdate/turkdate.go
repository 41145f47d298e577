// Package turkdate converts Turkish free-text dates ("5 Ocak 2024") into the
// canonical YYYY-MM-DD form everything downstream stores and sorts by.
package turkdate

import (
	"fmt"
	"strings"
)

// Months maps Turkish month names to their two-digit numbers.
var Months = map[string]string{
	"Ocak":    "01",
	"Şubat":   "02",
	"Mart":    "03",
	"Nisan":   "04",
	"Mayıs":   "05",
	"Haziran": "06",
	"Temmuz":  "07",
	"Ağustos": "08",
	"Eylül":   "09",
	"Ekim":    "10",
	"Kasım":   "11",
	"Aralık":  "12",
}

// FormatError reports a date string that does not fit the day month-name year
// shape. It is scoped to the single record being processed.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// Normalize converts "5 Ocak 2024" to "2024-01-05". The input must be exactly
// three whitespace-separated tokens with a month name present in Months.
func Normalize(raw string) (string, error) {
	parts := strings.Fields(raw)
	if len(parts) != 3 {
		return "", &FormatError{Input: raw, Reason: "want day, month name and year"}
	}
	day, month, year := parts[0], parts[1], parts[2]
	num, ok := Months[month]
	if !ok {
		return "", &FormatError{Input: raw, Reason: "unknown month " + month}
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return year + "-" + num + "-" + day, nil
}
