package database

import (
	"fmt"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"

	"gorm.io/gorm"
)

// sortColumns maps API sort fields to qualified columns for one table.
type sortColumns map[string]string

// orderBy resolves the request sort against the whitelist. fallback is used when
// the request carries none; tie always closes the clause for a stable order.
func (c sortColumns) orderBy(req page.Request, fallback, tie string) (string, error) {
	if req.Sort == nil || req.Sort.Field == "" {
		return fallback + ", " + tie, nil
	}
	col, ok := c[req.Sort.Field]
	if !ok {
		return "", apperr.Validation(fmt.Sprintf("unsupported sort field %q", req.Sort.Field))
	}
	dir := "ASC"
	if req.Sort.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, %s", col, dir, tie), nil
}

// paginate counts the filtered query, then loads one page of it. Scopes (such as
// preloads) apply to the page load only.
func paginate[T any](query *gorm.DB, req page.Request, order string, scopes ...func(*gorm.DB) *gorm.DB) (page.Page[T], error) {
	if err := req.Validate(); err != nil {
		return page.Page[T]{}, err
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return page.Page[T]{}, apperr.Internal(err)
	}
	if req.Beyond(total) {
		return page.New[T](nil, total, req), nil
	}

	var items []T
	if err := query.Session(&gorm.Session{}).
		Scopes(scopes...).
		Order(order).
		Offset(req.Offset()).
		Limit(req.Size).
		Find(&items).Error; err != nil {
		return page.Page[T]{}, apperr.Internal(err)
	}
	return page.New(items, total, req), nil
}
