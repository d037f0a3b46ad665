package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	params := FromContext(testContext(t, "/api/tasks/list"))
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Equal(t, 0, params.Offset())
}

func TestFromContextClampsPageSize(t *testing.T) {
	params := FromContext(testContext(t, "/api/tasks/list?page_size=500"))
	assert.Equal(t, MaxPageSize, params.PageSize)

	params = FromContext(testContext(t, "/api/tasks/list?page_size=0"))
	assert.Equal(t, DefaultPageSize, params.PageSize)
}

func TestFromContextIgnoresGarbage(t *testing.T) {
	params := FromContext(testContext(t, "/api/tasks/list?page=abc&page_size=xyz"))
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
}

func TestFromContextOffset(t *testing.T) {
	params := FromContext(testContext(t, "/api/tasks/list?page=3&page_size=20"))
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.PageSize)
	assert.Equal(t, 40, params.Offset())
}

func TestNewPageLinks(t *testing.T) {
	c := testContext(t, "/api/tasks/list?category=work&page=2&page_size=10")
	params := Params{Page: 2, PageSize: 10}

	page := NewPage(c, params, 35, []string{})
	assert.Equal(t, int64(35), page.Count)

	assert.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=3")
	assert.Contains(t, *page.Next, "category=work")

	assert.NotNil(t, page.Previous)
	assert.Contains(t, *page.Previous, "page=1")
}

func TestNewPageFirstAndLastPage(t *testing.T) {
	c := testContext(t, "/api/tasks/list")
	page := NewPage(c, Params{Page: 1, PageSize: 10}, 7, []string{})
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}

func TestNewPageBeyondLastPage(t *testing.T) {
	c := testContext(t, "/api/tasks/list?page=9")
	page := NewPage(c, Params{Page: 9, PageSize: 10}, 7, []string{})
	assert.Equal(t, int64(7), page.Count)
	assert.Nil(t, page.Next)
	assert.NotNil(t, page.Previous)
}
