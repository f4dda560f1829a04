package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"docportal/internal/view"
)

const (
	// ClientCookie identifies a browser across requests.
	ClientCookie = "sid"
	// ControllerLocalKey is where Client stores the resolved *view.Controller.
	ControllerLocalKey = "controller"
)

// ClientOptions configures the client id cookie.
type ClientOptions struct {
	Secure bool
	MaxAge time.Duration
}

// Client resolves the sid cookie to a controller, issuing a new id when the
// cookie is missing or malformed. The id outlives the request as a registry key,
// so it is copied out of Fiber's reused request buffer.
func Client(reg *view.Registry, opts ClientOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := utils.CopyString(c.Cookies(ClientCookie))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     ClientCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(opts.MaxAge.Seconds()),
				HTTPOnly: true,
				Secure:   opts.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(ControllerLocalKey, reg.Get(c.UserContext(), id))
		return c.Next()
	}
}

// ControllerFrom returns the controller stored by Client, or nil.
func ControllerFrom(c *fiber.Ctx) *view.Controller {
	ctrl, _ := c.Locals(ControllerLocalKey).(*view.Controller)
	return ctrl
}

// RequireSession guards protected routes. Unauthenticated browsers are
// redirected to loginPath; API callers get a 401. A session that could not be
// restored yet answers 503 instead of bouncing the user to the login page.
func RequireSession(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl := ControllerFrom(c)
		if ctrl != nil && ctrl.Session().Authenticated() {
			return c.Next()
		}
		if ctrl != nil && ctrl.Session().Loading() {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Session is still loading")
		}
		if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMETextHTML {
			return c.Redirect(loginPath, fiber.StatusSeeOther)
		}
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}
}
