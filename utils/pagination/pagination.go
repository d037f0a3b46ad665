package pagination

import (
	"strconv"

	"tasknest/tasknest/models"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params are the client-supplied page coordinates, already clamped
type Params struct {
	Page     int
	PageSize int
}

// FromContext reads page and page_size query parameters. Invalid or
// out-of-range values fall back to defaults rather than erroring.
func FromContext(c *gin.Context) Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{Page: page, PageSize: size}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// NewPage wraps results in the count/next/previous/results envelope. Links
// are the request URL with the page parameter rewritten, nil at either end.
func NewPage(c *gin.Context, p Params, count int64, results interface{}) models.Page {
	page := models.Page{
		Count:   count,
		Results: results,
	}

	if int64(p.Page*p.PageSize) < count {
		page.Next = pageLink(c, p.Page+1)
	}
	if p.Page > 1 {
		page.Previous = pageLink(c, p.Page-1)
	}

	return page
}

func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
