package store

import (
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction orders a sorted view.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection maps the wire form back to a Direction; anything that
// is not "desc" is ascending.
func ParseDirection(s string) Direction {
	if s == "desc" {
		return Descending
	}
	return Ascending
}

// SortState is the (column, direction) pair a view is sorted by.
// Toggling the active column flips direction; picking a new column
// resets to ascending.
type SortState struct {
	Column string
	Dir    Direction
}

func (s *SortState) Toggle(column string) {
	if s.Column == column {
		if s.Dir == Ascending {
			s.Dir = Descending
		} else {
			s.Dir = Ascending
		}
		return
	}
	s.Column = column
	s.Dir = Ascending
}

// newCollator builds the case-insensitive locale collator used for every
// string column. Collators buffer internally, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// orderStrings applies direction to a locale-aware string comparison.
func orderStrings(c *collate.Collator, a, b string, dir Direction) int {
	cmp := c.CompareString(a, b)
	if dir == Descending {
		cmp = -cmp
	}
	return cmp
}

// orderOptInt compares optional integers with the absent-last rule:
// a missing value sorts after every present one in both directions.
func orderOptInt(a, b *int, dir Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	cmp := 0
	if *a < *b {
		cmp = -1
	} else if *a > *b {
		cmp = 1
	}
	if dir == Descending {
		cmp = -cmp
	}
	return cmp
}

// orderOptFloat is orderOptInt for float columns (complexity).
func orderOptFloat(a, b *float64, dir Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	cmp := 0
	if *a < *b {
		cmp = -1
	} else if *a > *b {
		cmp = 1
	}
	if dir == Descending {
		cmp = -cmp
	}
	return cmp
}

// orderInts applies direction to two plain ints.
func orderInts(a, b int, dir Direction) int {
	cmp := 0
	if a < b {
		cmp = -1
	} else if a > b {
		cmp = 1
	}
	if dir == Descending {
		cmp = -cmp
	}
	return cmp
}

// orderOptTime compares optional dates. Unlike the numeric rule, an
// absent date normalizes to the zero instant and then participates
// normally: it sorts first ascending and last descending.
func orderOptTime(a, b *time.Time, dir Direction) int {
	at, bt := time.Time{}, time.Time{}
	if a != nil {
		at = *a
	}
	if b != nil {
		bt = *b
	}
	cmp := at.Compare(bt)
	if dir == Descending {
		cmp = -cmp
	}
	return cmp
}

// orderTimes applies direction to two plain dates.
func orderTimes(a, b time.Time, dir Direction) int {
	cmp := a.Compare(b)
	if dir == Descending {
		cmp = -cmp
	}
	return cmp
}
