// Package listing holds the slicing and filtering shared by the list views.
package listing

import (
	"strconv"

	"github.com/samber/lo"
)

const (
	HomePageSize     = 4
	CategoryPageSize = 24
)

// Page is one page of an already fully fetched list.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalPages int
}

// PageCount is ceil(total/size).
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Paginate returns page number (1-based) of items. The page number is not
// clamped: a page outside 1..TotalPages has no items.
func Paginate[T any](items []T, number, size int) Page[T] {
	p := Page[T]{
		Number:     number,
		Size:       size,
		TotalPages: PageCount(len(items), size),
	}
	if number < 1 || number > p.TotalPages {
		return p
	}
	first := (number - 1) * size
	p.Items = lo.Slice(items, first, first+size)
	return p
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.TotalPages
}

// Numbers lists every page number for the page links.
func (p Page[T]) Numbers() []int {
	return lo.RangeFrom(1, p.TotalPages)
}

// ParsePageNumber reads a ?page= value. Missing or malformed values mean the
// first page; numeric values are returned as-is, even when out of range.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}
