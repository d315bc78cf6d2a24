package types

import (
	"errors"
	"strconv"

	"blog-api/globals"

	"github.com/gin-gonic/gin"
)

// PaginationHelper carries clamped pagination parameters and the derived
// SQL offset.
type PaginationHelper struct {
	Page    int
	PerPage int
	Offset  int
}

// NewPaginationHelper clamps page to >= 1 and perPage to [1, MaxPerPage].
// A zero perPage takes the default.
func NewPaginationHelper(page, perPage int) *PaginationHelper {
	if page < 1 {
		page = 1
	}
	if perPage == 0 {
		perPage = globals.DefaultPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > globals.MaxPerPage {
		perPage = globals.MaxPerPage
	}
	return &PaginationHelper{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
	}
}

// ErrBadPagination reports non-numeric page or per_page query values.
var ErrBadPagination = errors.New("invalid pagination parameters")

// ParsePaginationParams extracts page and per_page from the query string.
// Missing values take defaults; non-numeric values are an error (400);
// out-of-range numeric values are clamped.
func ParsePaginationParams(c *gin.Context) (*PaginationHelper, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return nil, ErrBadPagination
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(globals.DefaultPerPage)))
	if err != nil {
		return nil, ErrBadPagination
	}
	return NewPaginationHelper(page, perPage), nil
}

// BuildResponse assembles the paginated listing body: items plus totals
// and next/prev page markers (null when absent).
func (p *PaginationHelper) BuildResponse(key string, items interface{}, total int) gin.H {
	totalPages := (total + p.PerPage - 1) / p.PerPage

	var nextPage, prevPage *int
	if p.Page < totalPages {
		n := p.Page + 1
		nextPage = &n
	}
	if p.Page > 1 {
		n := p.Page - 1
		prevPage = &n
	}

	return gin.H{
		key:             items,
		"total_posts":   total,
		"total_pages":   totalPages,
		"current_page":  p.Page,
		"per_page":      p.PerPage,
		"next_page_num": nextPage,
		"prev_page_num": prevPage,
	}
}
