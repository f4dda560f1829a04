package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"docportal/internal/apperr"
	"docportal/internal/model"
	"docportal/internal/view"
)

// searchForm is the raw search submission. Dates accept YYYY-MM-DD or a local date-time.
type searchForm struct {
	Title        string `json:"title" form:"title"`
	Author       string `json:"author" form:"author"`
	Content      string `json:"content" form:"content"`
	DocumentType string `json:"documentType" form:"documentType"`
	StartDate    string `json:"startDate" form:"startDate"`
	EndDate      string `json:"endDate" form:"endDate"`
	Page         int    `json:"page" form:"page"`
	Size         int    `json:"size" form:"size"`
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	model.LocalDateTimeLayout,
	time.RFC3339,
}

// parseDate reads a filter date. A bare day used as an end bound covers the whole day.
func parseDate(s string, endOfDay bool) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for i, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			continue
		}
		if i == 0 && endOfDay {
			t = t.Add(24*time.Hour - time.Second)
		}
		return &t, true
	}
	return nil, false
}

func (f searchForm) params() (model.SearchParams, error) {
	const op = "handler.Search"
	fields := map[string]string{}
	p := model.SearchParams{
		Title:   f.Title,
		Author:  f.Author,
		Content: f.Content,
		Page:    f.Page,
		Size:    f.Size,
	}

	if strings.TrimSpace(f.DocumentType) != "" {
		dt, ok := model.ParseDocumentType(f.DocumentType)
		if !ok {
			fields["documentType"] = "Unknown document type"
		}
		p.DocumentType = dt
	}
	var ok bool
	if p.StartDate, ok = parseDate(f.StartDate, false); !ok {
		fields["startDate"] = "Invalid start date"
	}
	if p.EndDate, ok = parseDate(f.EndDate, true); !ok {
		fields["endDate"] = "Invalid end date"
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		fields["endDate"] = "End date must not be before start date"
	}

	if len(fields) > 0 {
		for _, k := range []string{"documentType", "startDate", "endDate"} {
			if msg, ok := fields[k]; ok {
				return p, apperr.Validation(op, msg, fields)
			}
		}
	}
	return p, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("handler.parseID", "invalid id format", map[string]string{"id": "invalid id format"})
	}
	return id, nil
}

// Dashboard renders the document list. The first visit runs the default search.
func Dashboard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		if !ctrl.HasResults() {
			// Failures are kept in the controller state and shown on the page.
			_, _ = ctrl.Refresh(c.UserContext())
		}
		return c.Render("dashboard", newPage("Documents", ctrl))
	}
}

// Search godoc
// @Summary Search documents
// @Description Runs the combined filter search. Empty filters are omitted. The returned page becomes the current page.
// @Tags documents
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body searchForm true "Filters"
// @Success 200 {object} model.Page[model.Document]
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /dashboard/search [post]
func Search() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		var form searchForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		params, err := form.params()
		if err != nil {
			return renderError(c, err, "dashboard", newPage("Documents", ctrl))
		}
		page, err := ctrl.Search(c.UserContext(), params)
		if err != nil {
			return renderError(c, err, "dashboard", newPage("Documents", ctrl))
		}
		return done(c, "/dashboard", fiber.StatusOK, page)
	}
}

// GoToPage godoc
// @Summary Change page
// @Description Re-runs the current filters on another page.
// @Tags documents
// @Produce json
// @Param page path int true "Zero-based page index"
// @Success 200 {object} model.Page[model.Document]
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /dashboard/page/{page} [post]
func GoToPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(c.Params("page"))
		if err != nil || n < 0 {
			err := apperr.Validation("handler.GoToPage", "invalid page", map[string]string{"page": "invalid page"})
			return renderError(c, err, "dashboard", newPage("Documents", ctrl))
		}
		page, err := ctrl.GoToPage(c.UserContext(), n)
		if err != nil {
			return renderError(c, err, "dashboard", newPage("Documents", ctrl))
		}
		return done(c, "/dashboard", fiber.StatusOK, page)
	}
}

// Refresh godoc
// @Summary Refresh list
// @Description Re-runs the last search, or the default first page.
// @Tags documents
// @Produce json
// @Success 200 {object} model.Page[model.Document]
// @Router /dashboard/refresh [post]
func Refresh() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		page, err := ctrl.Refresh(c.UserContext())
		if err != nil {
			return renderError(c, err, "dashboard", newPage("Documents", ctrl))
		}
		return done(c, "/dashboard", fiber.StatusOK, page)
	}
}

// Upload godoc
// @Summary Upload document
// @Description Sends a file to the backend and refreshes the list. Title is required.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param title formData string true "Title"
// @Param author formData string false "Author"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /dashboard/upload [post]
func Upload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		form := view.UploadForm{
			Title:  c.FormValue("title"),
			Author: c.FormValue("author"),
		}
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()
			form.File = f
			form.FileName = fh.Filename
			form.ContentType = fh.Header.Get(fiber.HeaderContentType)
		}

		doc, err := ctrl.Upload(c.UserContext(), form)
		if err != nil {
			data := newPage("Documents", ctrl)
			data.Form = map[string]string{"title": form.Title, "author": form.Author}
			return renderError(c, err, "dashboard", data)
		}
		return done(c, "/dashboard", fiber.StatusCreated, doc)
	}
}

// Delete godoc
// @Summary Delete document
// @Description Removes a document and refreshes the list.
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} deleteResult
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /dashboard/documents/{id} [delete]
func Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return renderError(c, err, "dashboard", newPage("Documents", ctrl))
		}
		if err := ctrl.Delete(c.UserContext(), id); err != nil {
			return renderError(c, err, "dashboard", newPage("Documents", ctrl))
		}
		return done(c, "/dashboard", fiber.StatusOK, deleteResult{ID: id, Results: ctrl.State().Results})
	}
}

type deleteResult struct {
	ID      int64                       `json:"id"`
	Results *model.Page[model.Document] `json:"results,omitempty"`
}

// DocumentPage renders one document, with keyword passages when ?keyword= is set.
func DocumentPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		data := newPage("Document", ctrl)
		data.Error = ""
		id, err := parseID(c)
		if err != nil {
			return renderError(c, err, "document", data)
		}
		doc, err := ctrl.Document(c.UserContext(), id)
		if err != nil {
			return renderError(c, err, "document", data)
		}
		data.Title = doc.Title
		data.Document = doc

		if kw := strings.TrimSpace(c.Query("keyword")); kw != "" {
			data.Keyword = kw
			snippets, err := ctrl.Snippets(c.UserContext(), id, kw)
			if err != nil {
				data.Error = apperr.MessageOf(err)
			}
			data.Snippets = snippets
		}
		return c.Render("document", data)
	}
}

// GetDocument godoc
// @Summary Get document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /dashboard/documents/{id} [get]
func GetDocument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return writeAppError(c, err)
		}
		doc, err := ctrl.Document(c.UserContext(), id)
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(doc)
	}
}

// Filter godoc
// @Summary Single-criterion lookup
// @Description Lists documents by author, title, type or date range without changing the current search.
// @Tags documents
// @Produce json
// @Param by path string true "Criterion" Enums(author, title, type, date-range)
// @Param value query string false "Author, title or document type"
// @Param start query string false "Range start (YYYY-MM-DD or date-time)"
// @Param end query string false "Range end (YYYY-MM-DD or date-time)"
// @Param page query int false "Page" default(0)
// @Param size query int false "Size" default(10)
// @Success 200 {object} model.Page[model.Document]
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /dashboard/filter/{by} [get]
func Filter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		const op = "handler.Filter"
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		q := view.FilterQuery{
			By:    c.Params("by"),
			Value: c.Query("value"),
			Page:  c.QueryInt("page", 0),
			Size:  c.QueryInt("size", model.DefaultPageSize),
		}
		var ok bool
		if q.Start, ok = parseDate(c.Query("start"), false); !ok {
			return writeAppError(c, apperr.Validation(op, "Invalid start date", map[string]string{"start": "Invalid start date"}))
		}
		if q.End, ok = parseDate(c.Query("end"), true); !ok {
			return writeAppError(c, apperr.Validation(op, "Invalid end date", map[string]string{"end": "Invalid end date"}))
		}
		page, err := ctrl.Filter(c.UserContext(), q)
		if err != nil {
			return writeAppError(c, err)
		}
		return c.JSON(page)
	}
}

// State godoc
// @Summary Page state
// @Description Loading flags, filters, results and the last error for this browser.
// @Tags documents
// @Produce json
// @Success 200 {object} view.State
// @Router /dashboard/state [get]
func State() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl, err := controller(c)
		if err != nil {
			return err
		}
		return c.JSON(ctrl.State())
	}
}
