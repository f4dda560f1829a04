package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/apperr"
	"docportal/internal/http/middleware"
	"docportal/internal/model"
	"docportal/internal/view"
	"docportal/internal/web"
)

// wantsJSON reports whether the caller is a script rather than a browser form.
func wantsJSON(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return true
	}
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// jsonResponder records the redirect the auth gateway asks for instead of
// sending it, so JSON callers receive the target in the body.
type jsonResponder struct {
	*fiber.Ctx
	location string
}

func (r *jsonResponder) Redirect(location string, _ ...int) error {
	r.location = location
	return nil
}

// controller returns the per-client controller resolved by middleware.Client.
func controller(c *fiber.Ctx) (*view.Controller, error) {
	ctrl := middleware.ControllerFrom(c)
	if ctrl == nil {
		return nil, fiber.ErrInternalServerError
	}
	return ctrl, nil
}

func newPage(title string, ctrl *view.Controller) web.PageData {
	st := ctrl.State()
	return web.PageData{
		Title:         title,
		State:         st,
		Error:         st.Error,
		DocumentTypes: model.DocumentTypes,
		Roles:         []model.Role{model.RoleViewer, model.RoleEditor, model.RoleAdmin},
	}
}

// renderError re-renders a page with the failure for browsers and writes the
// JSON envelope for scripts.
func renderError(c *fiber.Ctx, err error, page string, data web.PageData) error {
	if wantsJSON(c) {
		return writeAppError(c, err)
	}
	status, _ := classify(err)
	data.Error = apperr.MessageOf(err)
	data.Fields = apperr.FieldsOf(err)
	return c.Status(status).Render(page, data)
}

// done finishes a successful mutation: PRG redirect for browsers, JSON otherwise.
func done(c *fiber.Ctx, location string, status int, body any) error {
	if wantsJSON(c) {
		return c.Status(status).JSON(body)
	}
	return c.Redirect(location, fiber.StatusSeeOther)
}
