package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/staff", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/staff", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/staff/:id", "DELETE", "NOT_FOUND")

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.Requests["/api/staff|GET|200"])
	assert.EqualValues(t, 20, snap.AvgLatencyMS["/api/staff|GET|200"])
	assert.EqualValues(t, 1, snap.Errors["/api/staff/:id|DELETE|NOT_FOUND"])

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", "GET", 200, time.Millisecond)
	assert.Empty(t, nilMetrics.Snapshot().Requests)
}

func TestRequestLoggerUsesRoutePattern(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/api/staff/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/staff/emp_001", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.EqualValues(t, 1, m.Snapshot().Requests["/api/staff/:id|GET|204"])
}
