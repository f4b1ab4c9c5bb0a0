package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RouteLabelsAndUnmatchedTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/workout/:token", func(c *gin.Context) { c.String(http.StatusOK, "view") })
	r.POST("/clients", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	token := strings.Repeat("ab", 32)
	baseRoute := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/workout/:token", "200"))
	baseMiss := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404"))

	for _, p := range []string{"/workout/" + token, "/workout/" + token + "/extra"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("POST /clients -> %d", w.Code)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/workout/:token", "200")); got != baseRoute+1 {
		t.Fatalf("route counter = %v; want %v", got, baseRoute+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404")); got != baseMiss+1 {
		t.Fatalf("unmatched counter = %v; want %v", got, baseMiss+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}

	// No series may carry the token.
	if err := testutil.CollectAndCompare(httpReqs, strings.NewReader(""), "http_requests_total"); err != nil &&
		strings.Contains(err.Error(), token) {
		t.Fatalf("token leaked into labels")
	}
}
