package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"docportal/internal/apiclient"
	svcMocks "docportal/internal/service/mocks"
	"docportal/internal/storage"
	stMocks "docportal/internal/storage/mocks"
	"docportal/internal/view"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})
	app.Get("/ctx", func(c *fiber.Ctx) error {
		return c.SendString(apiclient.RequestIDFromContext(c.UserContext()))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should expose request id to backend calls", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ctx", nil)
		req.Header.Set(RequestIDHeader, "abc")

		resp, _ := app.Test(req)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, "abc", buf.String())
	})
}

func bufferLogger(buf *bytes.Buffer) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(buf), zapcore.DebugLevel)
	return zap.New(core)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(bufferLogger(&buf)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadGateway, "upstream")
	})

	t.Run("success", func(t *testing.T) {
		buf.Reset()
		resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))

		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
		assert.NotEmpty(t, logData["request_id"])
		assert.Equal(t, "GET", logData["method"])
		assert.Equal(t, "/test", logData["path"])
		assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
		assert.NotNil(t, logData["latency"])
		assert.NotEmpty(t, logData["ts"])
		assert.Equal(t, "info", logData["level"])
	})

	t.Run("error status is logged after the error handler runs", func(t *testing.T) {
		buf.Reset()
		resp, _ := app.Test(httptest.NewRequest("GET", "/fail", nil))

		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
		assert.Equal(t, float64(fiber.StatusBadGateway), logData["status"])
		assert.Equal(t, "error", logData["level"])
	})
}

func TestNoStore(t *testing.T) {
	app := fiber.New()
	app.Use(NoStore())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))
}

func newRegistry(st storage.Storage) *view.Registry {
	return view.NewRegistry(st, new(svcMocks.MockAuthGateway), new(svcMocks.MockDocumentService), new(svcMocks.MockQAService), zap.NewNop())
}

func clientApp(reg *view.Registry) *fiber.App {
	app := fiber.New()
	app.Use(Client(reg, ClientOptions{MaxAge: 0}))
	app.Get("/who", func(c *fiber.Ctx) error {
		return c.SendString(ControllerFrom(c).Session().ClientID())
	})
	protected := app.Group("/private", RequireSession("/login"))
	protected.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("secret")
	})
	return app
}

func TestClient(t *testing.T) {
	reg := newRegistry(storage.NewMemory(0))
	app := clientApp(reg)

	t.Run("issues a new id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/who", nil))

		var sid *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == ClientCookie {
				sid = c
			}
		}
		require.NotNil(t, sid)
		assert.True(t, sid.HttpOnly)
		_, err := uuid.Parse(sid.Value)
		assert.NoError(t, err)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, sid.Value, buf.String())
	})

	t.Run("reuses a valid id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/who", nil)
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})

		resp, _ := app.Test(req)

		assert.Empty(t, resp.Cookies())
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, id, buf.String())
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/who", nil)
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "../../etc"})

		resp, _ := app.Test(req)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.NotEqual(t, "../../etc", buf.String())
	})
}

func TestClient_IDsStableAcrossInterleavedRequests(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory(0)
	alice := "11111111-1111-4111-8111-111111111111"
	bob := "22222222-2222-4222-8222-222222222222"
	require.NoError(t, st.Save(ctx, alice, map[string]string{
		storage.KeyToken: "tok-a",
		storage.KeyUser:  `{"username":"alice"}`,
	}))
	reg := newRegistry(st)
	app := clientApp(reg)

	who := func(id string) string {
		req := httptest.NewRequest("GET", "/who", nil)
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: id})
		resp, err := app.Test(req)
		require.NoError(t, err)
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return buf.String()
	}

	require.Equal(t, alice, who(alice))
	for i := 0; i < 5; i++ {
		require.Equal(t, bob, who(bob))
	}

	assert.Equal(t, 2, reg.Len())
	a := reg.Get(ctx, alice)
	assert.Equal(t, alice, a.Session().ClientID())
	assert.Equal(t, "tok-a", a.Session().Token())
	assert.Equal(t, bob, reg.Get(ctx, bob).Session().ClientID())
	assert.Empty(t, reg.Get(ctx, bob).Session().Token())
	assert.Equal(t, 2, reg.Len())
}

func TestRequireSession(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory(0)
	loggedIn := uuid.NewString()
	require.NoError(t, st.Save(ctx, loggedIn, map[string]string{
		storage.KeyToken: "tok",
		storage.KeyUser:  `{"username":"alice"}`,
	}))
	app := clientApp(newRegistry(st))

	t.Run("browser is redirected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Accept", "text/html")

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("api caller gets 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		req.Header.Set("Accept", "application/json")

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/private", nil)
		req.AddCookie(&http.Cookie{Name: ClientCookie, Value: loggedIn})

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("unrestored session answers 503", func(t *testing.T) {
		broken := new(stMocks.MockStorage)
		broken.On("Load", mock.Anything, mock.Anything).Return(nil, assert.AnError)
		app := clientApp(newRegistry(broken))

		resp, _ := app.Test(httptest.NewRequest("GET", "/private", nil))

		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}
