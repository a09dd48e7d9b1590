package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(header string) (*httptest.ResponseRecorder, string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(headerKey, header)
	}
	r.ServeHTTP(w, req)
	return w, seen
}

func TestMiddlewareReusesCallerID(t *testing.T) {
	w, seen := serve("upstream-42")
	assert.Equal(t, "upstream-42", seen)
	assert.Equal(t, "upstream-42", w.Header().Get(headerKey))
}

func TestMiddlewareReplacesMissingOrMalformedID(t *testing.T) {
	for _, header := range []string{"", "has spaces", strings.Repeat("x", 65)} {
		w, seen := serve(header)
		_, err := uuid.Parse(seen)
		require.NoError(t, err, header)
		assert.Equal(t, seen, w.Header().Get(headerKey))
	}
}
