// Package view holds the per-client page state that sits between the HTTP
// handlers and the backend services.
package view

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"docportal/internal/apperr"
	"docportal/internal/model"
	"docportal/internal/service"
	"docportal/internal/session"
)

// Pipeline names one independent action -> request -> state update sequence.
type Pipeline string

const (
	PipelineSearch Pipeline = "search"
	PipelineUpload Pipeline = "upload"
	PipelineAsk    Pipeline = "ask"
	PipelineAuth   Pipeline = "auth"
)

// State is a snapshot of everything a page needs to render.
type State struct {
	Authenticated  bool                       `json:"authenticated"`
	SessionLoading bool                       `json:"sessionLoading"`
	User           *model.User                `json:"user,omitempty"`
	Searching      bool                       `json:"searching"`
	Uploading      bool                       `json:"uploading"`
	Asking         bool                       `json:"asking"`
	Authenticating bool                       `json:"authenticating"`
	Params         model.SearchParams         `json:"params"`
	Results        *model.Page[model.Document] `json:"results,omitempty"`
	Error          string                     `json:"error,omitempty"`
	Question       string                     `json:"question,omitempty"`
	Answer         *model.QuestionResponse    `json:"answer,omitempty"`
}

// Controller orchestrates one client's searches, uploads and questions.
// The loading flag of each pipeline refuses duplicate user submissions; it does
// not order responses, so a slow reply may overwrite a newer one.
type Controller struct {
	store *session.Store
	auth  service.AuthGateway
	docs  service.DocumentService
	qa    service.QAService
	log   *zap.Logger
	now   func() time.Time

	mu       sync.Mutex
	inflight map[Pipeline]int
	params   model.SearchParams
	results  *model.Page[model.Document]
	lastErr  string
	question string
	answer   *model.QuestionResponse
	lastUsed time.Time
}

// NewController creates a controller bound to one client's session.
func NewController(store *session.Store, auth service.AuthGateway, docs service.DocumentService, qa service.QAService, log *zap.Logger) *Controller {
	return &Controller{
		store:    store,
		auth:     auth,
		docs:     docs,
		qa:       qa,
		log:      log.With(zap.String("client_id", store.ClientID())),
		now:      time.Now,
		inflight: make(map[Pipeline]int),
		params:   model.SearchParams{}.Normalize(),
		lastUsed: time.Now(),
	}
}

// Session returns the client's session store.
func (c *Controller) Session() *session.Store { return c.store }

// begin marks a user-triggered submission. It refuses when the pipeline is already running.
func (c *Controller) begin(op string, p Pipeline) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[p] > 0 {
		return apperr.Busy(op, string(p))
	}
	c.inflight[p]++
	return nil
}

// mark sets the loading flag without refusing; used for internal refreshes.
func (c *Controller) mark(p Pipeline) {
	c.mu.Lock()
	c.inflight[p]++
	c.mu.Unlock()
}

func (c *Controller) end(p Pipeline) {
	c.mu.Lock()
	if c.inflight[p] > 0 {
		c.inflight[p]--
	}
	c.mu.Unlock()
}

// Busy reports whether the pipeline has a request in flight.
func (c *Controller) Busy(p Pipeline) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[p] > 0
}

// Touch records activity for idle eviction.
func (c *Controller) Touch() {
	c.mu.Lock()
	c.lastUsed = c.now()
	c.mu.Unlock()
}

// LastUsed returns the time of the last recorded activity.
func (c *Controller) LastUsed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}

// HasResults reports whether any search has completed.
func (c *Controller) HasResults() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results != nil
}

// State returns a snapshot for rendering.
func (c *Controller) State() State {
	sess := c.store.Current()
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Authenticated:  sess.Complete(),
		SessionLoading: c.store.Loading(),
		User:           sess.User,
		Searching:      c.inflight[PipelineSearch] > 0,
		Uploading:      c.inflight[PipelineUpload] > 0,
		Asking:         c.inflight[PipelineAsk] > 0,
		Authenticating: c.inflight[PipelineAuth] > 0,
		Params:         c.params,
		Results:        c.results,
		Error:          c.lastErr,
		Question:       c.question,
		Answer:         c.answer,
	}
}

// Search runs the full filter set. The returned page index becomes the current page.
func (c *Controller) Search(ctx context.Context, params model.SearchParams) (*model.Page[model.Document], error) {
	if err := c.begin("view.Search", PipelineSearch); err != nil {
		return nil, err
	}
	defer c.end(PipelineSearch)
	return c.runSearch(ctx, params.Normalize())
}

// GoToPage re-runs the current filters on another page. Pages are not cached.
func (c *Controller) GoToPage(ctx context.Context, page int) (*model.Page[model.Document], error) {
	if err := c.begin("view.GoToPage", PipelineSearch); err != nil {
		return nil, err
	}
	defer c.end(PipelineSearch)

	c.mu.Lock()
	params := c.params.WithPage(page)
	c.mu.Unlock()
	return c.runSearch(ctx, params)
}

// Refresh re-runs the last search, or the default first-page search if none ran yet.
// Both mutations call it so the list always reflects the backend.
func (c *Controller) Refresh(ctx context.Context) (*model.Page[model.Document], error) {
	c.mark(PipelineSearch)
	defer c.end(PipelineSearch)

	c.mu.Lock()
	params := c.params
	c.mu.Unlock()
	return c.runSearch(ctx, params)
}

func (c *Controller) runSearch(ctx context.Context, params model.SearchParams) (*model.Page[model.Document], error) {
	page, err := c.docs.Search(ctx, params, c.store.Token())
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = apperr.MessageOf(err)
		return nil, err
	}
	params.Page = page.Page
	c.params = params
	c.results = page
	c.lastErr = ""
	return page, nil
}

// Upload validates the form, sends the file and refreshes the list.
// A failed refresh after a successful upload is recorded in State().Error.
func (c *Controller) Upload(ctx context.Context, form UploadForm) (*model.Document, error) {
	const op = "view.Upload"
	form.Title = strings.TrimSpace(form.Title)
	form.Author = strings.TrimSpace(form.Author)
	if err := check(op, form); err != nil {
		return nil, err
	}
	if err := c.begin(op, PipelineUpload); err != nil {
		return nil, err
	}

	doc, err := c.docs.Upload(ctx, service.UploadInput{
		File:        form.File,
		FileName:    form.FileName,
		ContentType: form.ContentType,
		Title:       form.Title,
		Author:      form.Author,
	}, c.store.Token())
	c.end(PipelineUpload)
	if err != nil {
		c.setErr(err)
		return nil, err
	}

	c.log.Info("document_uploaded", zap.Int64("document_id", doc.ID))
	if _, err := c.Refresh(ctx); err != nil {
		c.log.Warn("refresh_after_upload_failed", zap.Error(err))
	}
	return doc, nil
}

// Delete removes a document and refreshes the list.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.docs.Delete(ctx, id, c.store.Token()); err != nil {
		c.setErr(err)
		return err
	}
	c.log.Info("document_deleted", zap.Int64("document_id", id))
	if _, err := c.Refresh(ctx); err != nil {
		c.log.Warn("refresh_after_delete_failed", zap.Error(err))
	}
	return nil
}

// Document looks up a single document for the detail view.
func (c *Controller) Document(ctx context.Context, id int64) (*model.Document, error) {
	return c.docs.GetByID(ctx, id, c.store.Token())
}

// Single-criterion lookups served by Filter.
const (
	FilterAuthor    = "author"
	FilterTitle     = "title"
	FilterType      = "type"
	FilterDateRange = "date-range"
)

// FilterQuery selects one criterion. Start and End are only read for date-range.
type FilterQuery struct {
	By    string
	Value string
	Start *time.Time
	End   *time.Time
	Page  int
	Size  int
}

// Filter runs a single-criterion lookup. The current search and its results are left untouched.
func (c *Controller) Filter(ctx context.Context, q FilterQuery) (*model.Page[model.Document], error) {
	const op = "view.Filter"
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = model.DefaultPageSize
	}
	value := strings.TrimSpace(q.Value)
	token := c.store.Token()

	switch q.By {
	case FilterAuthor, FilterTitle:
		if value == "" {
			return nil, apperr.Validation(op, "Value is required", map[string]string{"value": "Value is required"})
		}
		if q.By == FilterAuthor {
			return c.docs.ByAuthor(ctx, value, q.Page, q.Size, token)
		}
		return c.docs.ByTitle(ctx, value, q.Page, q.Size, token)
	case FilterType:
		dt, ok := model.ParseDocumentType(value)
		if !ok {
			return nil, apperr.Validation(op, "Unknown document type", map[string]string{"value": "Unknown document type"})
		}
		return c.docs.ByType(ctx, dt, q.Page, q.Size, token)
	case FilterDateRange:
		if q.Start == nil || q.End == nil {
			return nil, apperr.Validation(op, "Start and end dates are required", map[string]string{"start": "Start and end dates are required"})
		}
		if q.End.Before(*q.Start) {
			return nil, apperr.Validation(op, "End date must not be before start date", map[string]string{"end": "End date must not be before start date"})
		}
		return c.docs.ByDateRange(ctx, *q.Start, *q.End, q.Page, q.Size, token)
	default:
		return nil, apperr.Validation(op, "Unknown filter", map[string]string{"by": "Unknown filter"})
	}
}

// Ask validates and submits a question.
func (c *Controller) Ask(ctx context.Context, form QuestionForm) (*model.QuestionResponse, error) {
	const op = "view.Ask"
	form.Question = strings.TrimSpace(form.Question)
	if err := check(op, form); err != nil {
		return nil, err
	}
	if err := c.begin(op, PipelineAsk); err != nil {
		return nil, err
	}
	defer c.end(PipelineAsk)

	res, err := c.qa.Ask(ctx, form.Question, c.store.Token())
	c.mu.Lock()
	defer c.mu.Unlock()
	c.question = form.Question
	if err != nil {
		c.answer = nil
		c.lastErr = apperr.MessageOf(err)
		return nil, err
	}
	c.answer = res
	c.lastErr = ""
	return res, nil
}

// SearchKeyword runs a keyword search through the Q&A backend.
func (c *Controller) SearchKeyword(ctx context.Context, keyword string, page, size int) (*model.Page[model.Document], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperr.Validation("view.SearchKeyword", "Keyword is required", map[string]string{"keyword": "Keyword is required"})
	}
	return c.qa.SearchKeyword(ctx, keyword, page, size, c.store.Token())
}

// Snippets extracts passages of one document that mention a keyword.
func (c *Controller) Snippets(ctx context.Context, id int64, keyword string) (*model.QuestionResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperr.Validation("view.Snippets", "Keyword is required", map[string]string{"keyword": "Keyword is required"})
	}
	return c.qa.Snippets(ctx, id, keyword, c.store.Token())
}

// Login validates the form and authenticates under the auth loading flag.
// A successful login starts from an empty page.
func (c *Controller) Login(ctx context.Context, w service.Responder, form model.LoginRequest) error {
	const op = "view.Login"
	form = normalizeLogin(form)
	if err := check(op, form); err != nil {
		return err
	}
	if err := c.begin(op, PipelineAuth); err != nil {
		return err
	}
	defer c.end(PipelineAuth)
	if err := c.auth.Login(ctx, c.store, w, form); err != nil {
		return err
	}
	c.resetPage()
	return nil
}

// Register validates the form and creates an account under the auth loading flag.
// A successful registration starts from an empty page.
func (c *Controller) Register(ctx context.Context, w service.Responder, form model.RegisterRequest) error {
	const op = "view.Register"
	form = normalizeRegister(form)
	if err := check(op, form); err != nil {
		return err
	}
	if err := c.begin(op, PipelineAuth); err != nil {
		return err
	}
	defer c.end(PipelineAuth)
	if err := c.auth.Register(ctx, c.store, w, form); err != nil {
		return err
	}
	c.resetPage()
	return nil
}

// Logout always runs, even while another pipeline is busy, and drops all page state.
func (c *Controller) Logout(ctx context.Context, w service.Responder) error {
	c.resetPage()
	return c.auth.Logout(ctx, c.store, w)
}

// resetPage drops filters, results and the last answer. A new identity never
// sees the previous one's page.
func (c *Controller) resetPage() {
	c.mu.Lock()
	c.params = model.SearchParams{}.Normalize()
	c.results = nil
	c.lastErr = ""
	c.question = ""
	c.answer = nil
	c.mu.Unlock()
}

func (c *Controller) setErr(err error) {
	c.mu.Lock()
	c.lastErr = apperr.MessageOf(err)
	c.mu.Unlock()
}
