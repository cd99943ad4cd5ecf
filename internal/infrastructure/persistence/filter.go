package persistence

import (
	"strings"

	"github.com/apitest/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies search, ordering and pagination to a query.
// searchColumn is the column matched by Filter.Search; pass "" for
// repositories without a searchable column.
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumn string) *gorm.DB {
	if filter.Search != "" && searchColumn != "" {
		query = query.Where(searchColumn+" LIKE ?", "%"+filter.Search+"%")
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
