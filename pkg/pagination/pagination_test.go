package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(query string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParse_Defaults(t *testing.T) {
	p := paramsFor("")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParse_Clamping(t *testing.T) {
	p := paramsFor("page=-3&limit=0")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = paramsFor("limit=9999")
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestWindow(t *testing.T) {
	p := Params{Page: 2, Limit: 10}

	low, high := p.Window(25)
	assert.Equal(t, 10, low)
	assert.Equal(t, 20, high)

	// Last partial page.
	low, high = p.Window(15)
	assert.Equal(t, 10, low)
	assert.Equal(t, 15, high)

	// Past the end collapses to an empty window.
	low, high = p.Window(5)
	assert.Equal(t, 5, low)
	assert.Equal(t, 5, high)

	low, high = p.Window(0)
	assert.Equal(t, 0, low)
	assert.Equal(t, 0, high)
}
