package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/platform/requestid"
)

func setup() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.New())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = requestid.FromContext(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestNew_GeneratesULID(t *testing.T) {
	r, seen := setup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(requestid.Header)
	require.NotEmpty(t, id)
	assert.Len(t, id, 26)
	assert.Equal(t, id, *seen)
}

func TestNew_PropagatesIncomingID(t *testing.T) {
	r, seen := setup()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.Header, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestid.Header))
	assert.Equal(t, "req-123", *seen)
}
