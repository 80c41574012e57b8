package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersAndBoundedPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics("/botSECRET"))
	r.GET("/api/menu", func(c *gin.Context) { c.String(http.StatusOK, "[]") })
	r.POST("/botSECRET", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	baseMenu := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/menu", "200"))
	baseMiss := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404"))
	baseBot := testutil.ToFloat64(httpReqs.WithLabelValues("POST", maskedPath, "204"))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/menu", nil),
		httptest.NewRequest(http.MethodGet, "/does-not-exist", nil),
		httptest.NewRequest(http.MethodGet, "/also-missing", nil),
		httptest.NewRequest(http.MethodPost, "/botSECRET", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/menu", "200")); got != baseMenu+1 {
		t.Fatalf("menu counter = %v; want %v", got, baseMenu+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404")); got != baseMiss+2 {
		t.Fatalf("unmatched counter = %v; want %v", got, baseMiss+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("POST", maskedPath, "204")); got != baseBot+1 {
		t.Fatalf("masked counter = %v; want %v", got, baseBot+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404")); got != 0 {
		t.Fatalf("raw paths must not become labels")
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}
