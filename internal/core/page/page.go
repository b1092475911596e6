// Package page holds the pagination contract used by every listing operation.
package page

import "socialgraph/internal/core/apperr"

// Sort is an optional ordering request. Field uses the API name (e.g. "createdAt").
type Sort struct {
	Field string
	Desc  bool
}

// Request selects one page. Index is zero based.
type Request struct {
	Index int
	Size  int
	Sort  *Sort
}

func Of(index, size int) Request {
	return Request{Index: index, Size: size}
}

func (r Request) SortedBy(field string, desc bool) Request {
	r.Sort = &Sort{Field: field, Desc: desc}
	return r
}

func (r Request) Validate() error {
	if r.Index < 0 {
		return apperr.Validation("page index must not be negative")
	}
	if r.Size <= 0 {
		return apperr.Validation("page size must be positive")
	}
	return nil
}

func (r Request) Offset() int {
	return r.Index * r.Size
}

// Beyond reports whether the page starts past the last of total elements.
// It compares page counts, so huge indexes never reach Offset.
func (r Request) Beyond(total int64) bool {
	if r.Size <= 0 {
		return true
	}
	pages := (total + int64(r.Size) - 1) / int64(r.Size)
	return int64(r.Index) >= pages
}

// Page is a bounded slice of a result set plus its totals.
type Page[T any] struct {
	Items         []T   `json:"items"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	Index         int   `json:"page"`
	Size          int   `json:"size"`
}

// New builds a page; TotalPages = ceil(total/size).
func New[T any](items []T, total int64, req Request) Page[T] {
	if items == nil {
		items = []T{}
	}
	size := req.Size
	if size <= 0 {
		size = 1
	}
	return Page[T]{
		Items:         items,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
		Index:         req.Index,
		Size:          req.Size,
	}
}

func Empty[T any](req Request) Page[T] {
	return New[T](nil, 0, req)
}

// Map converts the items of a page, keeping its totals.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return Page[U]{
		Items:         out,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Index:         p.Index,
		Size:          p.Size,
	}
}
