package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListParams represents the standard list-endpoint query parameters
type ListParams struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search"`
	Sort   string `json:"sort"`
	Order  string `json:"order"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ParseListParams extracts standardized query parameters from Gin context
func ParseListParams(c *gin.Context) ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	order := c.DefaultQuery("order", "asc")
	if order != "asc" && order != "desc" {
		order = "asc"
	}

	return ListParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Sort:   c.DefaultQuery("sort", "id"),
		Order:  order,
	}
}

// ApplySearch applies a case-insensitive search across the given fields
func ApplySearch(query *gorm.DB, search string, searchFields []string) *gorm.DB {
	if search == "" || len(searchFields) == 0 {
		return query
	}

	conditions := make([]string, len(searchFields))
	args := make([]interface{}, len(searchFields))

	for i, field := range searchFields {
		conditions[i] = fmt.Sprintf("%s ILIKE ?", field)
		args[i] = "%" + search + "%"
	}

	return query.Where(strings.Join(conditions, " OR "), args...)
}

// ApplySort applies sorting, falling back to id when the field is not allowed
func ApplySort(query *gorm.DB, params ListParams, allowedSortFields map[string]string) *gorm.DB {
	if dbField, allowed := allowedSortFields[params.Sort]; allowed {
		return query.Order(fmt.Sprintf("%s %s", dbField, strings.ToUpper(params.Order)))
	}
	return query.Order("id ASC")
}

// ApplyPagination applies offset/limit pagination to a GORM query
func ApplyPagination(query *gorm.DB, params ListParams) *gorm.DB {
	return query.Offset((params.Page - 1) * params.Limit).Limit(params.Limit)
}

// BuildPaginationResponse creates pagination metadata
func BuildPaginationResponse(params ListParams, total int64) PaginationResponse {
	totalPages := (total + int64(params.Limit) - 1) / int64(params.Limit)

	return PaginationResponse{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < int(totalPages),
		HasPrev:    params.Page > 1,
	}
}
