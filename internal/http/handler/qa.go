package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/apperr"
	"docportal/internal/model"
	"docportal/internal/view"
)

// QAPage renders the question form, the last answer and an optional keyword search.
func QAPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		data := newPage("Ask", ctrl)
		if kw := strings.TrimSpace(c.Query("keyword")); kw != "" {
			data.Keyword = kw
			page, err := ctrl.SearchKeyword(c.UserContext(), kw, c.QueryInt("page", 0), c.QueryInt("size", model.DefaultPageSize))
			if err != nil {
				data.Error = apperr.MessageOf(err)
			}
			data.KeywordResults = page
		}
		return c.Render("qa", data)
	}
}

// Ask godoc
// @Summary Ask a question
// @Description Retrieves the passages most relevant to a natural-language question.
// @Tags qa
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body view.QuestionForm true "Question"
// @Success 200 {object} model.QuestionResponse
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /qa/ask [post]
func Ask() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		var form view.QuestionForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		res, err := ctrl.Ask(c.UserContext(), form)
		if err != nil {
			data := newPage("Ask", ctrl)
			data.State.Question = form.Question
			return renderError(c, err, "qa", data)
		}
		return done(c, "/qa", fiber.StatusOK, res)
	}
}

// KeywordSearch godoc
// @Summary Keyword search
// @Tags qa
// @Produce json
// @Param keyword query string true "Keyword"
// @Param page query int false "Page" default(0)
// @Param size query int false "Size" default(10)
// @Success 200 {object} model.Page[model.Document]
// @Failure 400 {object} errorPayload
// @Router /qa/search [get]
func KeywordSearch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		page, err := ctrl.SearchKeyword(c.UserContext(), c.Query("keyword"), c.QueryInt("page", 0), c.QueryInt("size", model.DefaultPageSize))
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(page)
	}
}

// Snippets godoc
// @Summary Document passages
// @Description Extracts passages of one document that mention a keyword.
// @Tags qa
// @Produce json
// @Param id path int true "Document ID"
// @Param keyword query string true "Keyword"
// @Success 200 {object} model.QuestionResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /qa/snippets/{id} [get]
func Snippets() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return writeAppError(c, err)
		}
		res, err := ctrl.Snippets(c.UserContext(), id, c.Query("keyword"))
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(res)
	}
}
