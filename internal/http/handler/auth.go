package handler

import (
	"github.com/gofiber/fiber/v2"

	"docportal/internal/model"
	"docportal/internal/service"
	"docportal/internal/view"
)

// sessionInfo is the JSON view of the current client's session.
type sessionInfo struct {
	Authenticated bool        `json:"authenticated"`
	Loading       bool        `json:"loading"`
	User          *model.User `json:"user,omitempty"`
}

// authResult is returned to JSON callers after login, register or logout.
type authResult struct {
	Redirect string      `json:"redirect"`
	Session  sessionInfo `json:"session"`
}

func currentSession(ctrl *view.Controller) sessionInfo {
	st := ctrl.State()
	return sessionInfo{Authenticated: st.Authenticated, Loading: st.SessionLoading, User: st.User}
}

// LoginPage renders the login form, or sends signed-in users to the dashboard.
func LoginPage() fiber.Handler {
	return authPage("login", "Log in")
}

// RegisterPage renders the registration form.
func RegisterPage() fiber.Handler {
	return authPage("register", "Register")
}

func authPage(page, title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		if ctrl.Session().Authenticated() {
			return c.Redirect(service.DashboardPath, fiber.StatusSeeOther)
		}
		return c.Render(page, newPage(title, ctrl))
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticates against the backend and starts a session for this browser.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body model.LoginRequest true "Credentials"
// @Success 200 {object} authResult
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /auth/login [post]
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		var req model.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		form := map[string]string{"username": req.Username}
		return authenticate(c, ctrl, "login", "Log in", form, func(w service.Responder) error {
			return ctrl.Login(c.UserContext(), w, req)
		})
	}
}

// Register godoc
// @Summary Register
// @Description Creates an account and signs the browser in. Role defaults to VIEWER.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body model.RegisterRequest true "Account"
// @Success 200 {object} authResult
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /auth/register [post]
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		var req model.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		form := map[string]string{
			"username": req.Username,
			"email":    req.Email,
			"fullName": req.FullName,
			"role":     string(req.Role),
		}
		return authenticate(c, ctrl, "register", "Register", form, func(w service.Responder) error {
			return ctrl.Register(c.UserContext(), w, req)
		})
	}
}

// authenticate runs a login or register call with the right responder for the caller.
func authenticate(c *fiber.Ctx, ctrl *view.Controller, page, title string, form map[string]string, run func(service.Responder) error) error {
	if wantsJSON(c) {
		w := &jsonResponder{Ctx: c}
		if err := run(w); err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(authResult{Redirect: w.location, Session: currentSession(ctrl)})
	}

	if err := run(c); err != nil {
		data := newPage(title, ctrl)
		data.Form = form
		return renderError(c, err, page, data)
	}
	return nil
}

// Logout godoc
// @Summary Log out
// @Description Ends the session. Succeeds even when the backend is unreachable.
// @Tags auth
// @Produce json
// @Success 200 {object} authResult
// @Router /auth/logout [post]
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		if wantsJSON(c) {
			w := &jsonResponder{Ctx: c}
			if err := ctrl.Logout(c.UserContext(), w); err != nil {
				return writeAppError(c, err)
			}
			return c.JSON(authResult{Redirect: w.location, Session: currentSession(ctrl)})
		}
		return ctrl.Logout(c.UserContext(), c)
	}
}

// SessionInfo godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} sessionInfo
// @Router /session [get]
func SessionInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		return c.JSON(currentSession(ctrl))
	}
}
