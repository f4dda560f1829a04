package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	return app, m, reg
}

func TestPrometheusMiddleware(t *testing.T) {
	app, m, _ := newPromApp(t)
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/dashboard/documents/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/error", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	app.Test(httptest.NewRequest("GET", "/dashboard", nil))
	app.Test(httptest.NewRequest("DELETE", "/dashboard/documents/7", nil))
	app.Test(httptest.NewRequest("GET", "/error", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/dashboard", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/dashboard/documents/:id", "200")),
		"route pattern is used as the path label")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/error", "400")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.requestDuration))
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	app, m, _ := newPromApp(t)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Test(httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 0, testutil.CollectAndCount(m.requestCount))
	assert.Equal(t, 0, testutil.CollectAndCount(m.requestDuration))
}

func TestPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	_, _, reg := newPromApp(t)

	_, err := NewPrometheusMiddleware(reg)

	assert.Error(t, err)
}

func TestPrometheusMiddleware_LabelsSurviveLaterRequests(t *testing.T) {
	app, m, _ := newPromApp(t)
	app.Get("/qa", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/dashboard/documents/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest("DELETE", "/dashboard/documents/1", nil))
		require.NoError(t, err)
		_, err = app.Test(httptest.NewRequest("GET", "/qa", nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/dashboard/documents/:id", "200")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/qa", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestCount))
}

func TestPrometheusMiddleware_UnmatchedRoutesShareOneSeries(t *testing.T) {
	app, m, _ := newPromApp(t)

	for _, p := range []string{"/nope", "/wp-admin", "/a/b/c"} {
		resp, err := app.Test(httptest.NewRequest("GET", p, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestCount.WithLabelValues("GET", UnmatchedRoute, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestCount))
}
