package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxNameLen is the column width of category names and product titles.
const MaxNameLen = 255

var (
	ErrRequired = errors.New("is required")
	ErrTooLong  = fmt.Errorf("must be at most %d characters", MaxNameLen)
)

// Name trims a category name and requires it to be non-empty and to fit the
// column. The error reads as the tail of a sentence about the field.
func Name(s string) (string, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", ErrRequired
	case utf8.RuneCountInString(s) > MaxNameLen:
		return "", ErrTooLong
	}
	return s, nil
}

// Title validates a product title the same way as a category name.
func Title(s string) (string, error) { return Name(s) }

// Price requires a strictly positive amount.
func Price(d decimal.Decimal) bool { return d.IsPositive() }

// ID parses a resource identifier from a path segment.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// IntOr parses a query integer, falling back to def when the value is missing,
// malformed or zero. Any other integer, negative included, is returned as is.
func IntOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return def
	}
	return n
}

// OptionalInt parses an optional integer filter. An empty value yields nil; a
// malformed one reports false.
func OptionalInt(s string) (*int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// Text trims optional free text; blank becomes nil.
func Text(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
