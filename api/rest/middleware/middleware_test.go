package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/showcase/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var seen string
	var hasLogger bool

	router.GET("/x", func(c *gin.Context) {
		seen = c.GetString(ContextKeyID)
		hasLogger = logger.FromContext(c.Request.Context()) != logger.Default()
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))
	assert.True(t, hasLogger)

	// a valid client id is propagated
	clientID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, clientID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, clientID, w.Header().Get(HeaderRequestID))

	// garbage is replaced
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "<script>")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(HeaderRequestID))
}

func TestRateLimit(t *testing.T) {
	store, err := NewLimiterStore(nil)
	require.NoError(t, err)

	limit, err := RateLimit("2-M", store)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/search", limit, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)

	for range 3 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/search", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_InvalidFormat(t *testing.T) {
	store, err := NewLimiterStore(nil)
	require.NoError(t, err)

	_, err = RateLimit("lots", store)
	assert.Error(t, err)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://www.example.com"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://www.example.com")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "https://www.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.org")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
