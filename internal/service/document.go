package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"docportal/internal/apiclient"
	"docportal/internal/apperr"
	"docportal/internal/model"
)

var (
	ErrTokenRequired = &apperr.Error{Kind: apperr.KindAuth, Message: "Authentication required"}
	ErrIDRequired    = &apperr.Error{Kind: apperr.KindValidation, Message: "A valid document id is required"}
	ErrReaderNil     = &apperr.Error{Kind: apperr.KindValidation, Message: "File is required", Fields: map[string]string{"file": "File is required"}}
)

// UploadInput is one file submitted through the upload form.
type UploadInput struct {
	File        io.Reader
	FileName    string
	ContentType string
	Title       string
	Author      string
}

// DocumentService builds document requests and decodes their responses.
// It keeps no state between calls; every call needs the caller's bearer token.
type DocumentService interface {
	// Upload sends the file as multipart form data and returns the created document.
	Upload(ctx context.Context, in UploadInput, token string) (*model.Document, error)

	// GetByID returns a single document.
	GetByID(ctx context.Context, id int64, token string) (*model.Document, error)

	// Delete removes a document. Callers refresh any list they hold afterwards.
	Delete(ctx context.Context, id int64, token string) error

	// Search runs a filtered search. Unset filters are not sent.
	Search(ctx context.Context, params model.SearchParams, token string) (*model.Page[model.Document], error)

	ByAuthor(ctx context.Context, author string, page, size int, token string) (*model.Page[model.Document], error)
	ByTitle(ctx context.Context, title string, page, size int, token string) (*model.Page[model.Document], error)
	ByType(ctx context.Context, docType model.DocumentType, page, size int, token string) (*model.Page[model.Document], error)
	ByDateRange(ctx context.Context, start, end time.Time, page, size int, token string) (*model.Page[model.Document], error)
}

type documentService struct {
	api *apiclient.Client
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(api *apiclient.Client) DocumentService {
	return &documentService{api: api}
}

const (
	msgUploadFailed = "Failed to upload document"
	msgFetchFailed  = "Failed to fetch document"
	msgDeleteFailed = "Failed to delete document"
	msgSearchFailed = "Failed to search documents"
)

func (s *documentService) Upload(ctx context.Context, in UploadInput, token string) (*model.Document, error) {
	const op = "document.Upload"
	if token == "" {
		return nil, ErrTokenRequired
	}
	if in.File == nil {
		return nil, ErrReaderNil
	}

	body, contentType, err := multipartBody(in)
	if err != nil {
		return nil, apperr.Network(op, msgUploadFailed, err)
	}

	res, err := s.api.Do(ctx, apiclient.Request{
		Endpoint:    "documents.upload",
		Method:      http.MethodPost,
		Path:        "/api/documents/upload",
		Token:       token,
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return nil, apperr.Network(op, msgUploadFailed, err)
	}
	if !res.OK() {
		return nil, statusError(op, msgUploadFailed, res, apperr.KindNetwork)
	}
	doc, err := apiclient.Decode[model.Document](s.api, res.Body)
	if err != nil {
		return nil, apperr.Network(op, msgUploadFailed, err)
	}
	return &doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id int64, token string) (*model.Document, error) {
	const op = "document.GetByID"
	if token == "" {
		return nil, ErrTokenRequired
	}
	if id <= 0 {
		return nil, ErrIDRequired
	}

	res, err := s.api.Do(ctx, apiclient.Request{
		Endpoint: "documents.get",
		Method:   http.MethodGet,
		Path:     "/api/documents/" + strconv.FormatInt(id, 10),
		Token:    token,
	})
	if err != nil {
		return nil, apperr.Network(op, msgFetchFailed, err)
	}
	if !res.OK() {
		return nil, statusError(op, msgFetchFailed, res, apperr.KindNotFound)
	}
	doc, err := apiclient.Decode[model.Document](s.api, res.Body)
	if err != nil {
		return nil, apperr.Network(op, msgFetchFailed, err)
	}
	return &doc, nil
}

func (s *documentService) Delete(ctx context.Context, id int64, token string) error {
	const op = "document.Delete"
	if token == "" {
		return ErrTokenRequired
	}
	if id <= 0 {
		return ErrIDRequired
	}

	res, err := s.api.Do(ctx, apiclient.Request{
		Endpoint: "documents.delete",
		Method:   http.MethodDelete,
		Path:     "/api/documents/" + strconv.FormatInt(id, 10),
		Token:    token,
	})
	if err != nil {
		return apperr.Network(op, msgDeleteFailed, err)
	}
	if !res.OK() {
		return statusError(op, msgDeleteFailed, res, apperr.KindNetwork)
	}
	return nil
}

func (s *documentService) Search(ctx context.Context, params model.SearchParams, token string) (*model.Page[model.Document], error) {
	return s.page(ctx, "document.Search", "documents.search", "/api/documents/search", SearchQuery(params), token)
}

func (s *documentService) ByAuthor(ctx context.Context, author string, page, size int, token string) (*model.Page[model.Document], error) {
	q := pageQuery(page, size)
	q.Set("author", strings.TrimSpace(author))
	return s.page(ctx, "document.ByAuthor", "documents.by_author", "/api/documents/by-author", q, token)
}

func (s *documentService) ByTitle(ctx context.Context, title string, page, size int, token string) (*model.Page[model.Document], error) {
	q := pageQuery(page, size)
	q.Set("title", strings.TrimSpace(title))
	return s.page(ctx, "document.ByTitle", "documents.by_title", "/api/documents/by-title", q, token)
}

func (s *documentService) ByType(ctx context.Context, docType model.DocumentType, page, size int, token string) (*model.Page[model.Document], error) {
	q := pageQuery(page, size)
	q.Set("documentType", string(docType))
	return s.page(ctx, "document.ByType", "documents.by_type", "/api/documents/by-type", q, token)
}

func (s *documentService) ByDateRange(ctx context.Context, start, end time.Time, page, size int, token string) (*model.Page[model.Document], error) {
	q := pageQuery(page, size)
	q.Set("startDate", start.Format(model.LocalDateTimeLayout))
	q.Set("endDate", end.Format(model.LocalDateTimeLayout))
	return s.page(ctx, "document.ByDateRange", "documents.by_date_range", "/api/documents/by-date-range", q, token)
}

func (s *documentService) page(ctx context.Context, op, endpoint, path string, q url.Values, token string) (*model.Page[model.Document], error) {
	if token == "" {
		return nil, ErrTokenRequired
	}
	res, err := s.api.Do(ctx, apiclient.Request{
		Endpoint: endpoint,
		Method:   http.MethodGet,
		Path:     path,
		Query:    q,
		Token:    token,
	})
	if err != nil {
		return nil, apperr.Network(op, msgSearchFailed, err)
	}
	if !res.OK() {
		return nil, statusError(op, msgSearchFailed, res, apperr.KindNetwork)
	}
	p, err := apiclient.Decode[model.Page[model.Document]](s.api, res.Body)
	if err != nil {
		return nil, apperr.Network(op, msgSearchFailed, err)
	}
	return &p, nil
}

// SearchQuery encodes the filters, leaving out every unset optional field.
func SearchQuery(params model.SearchParams) url.Values {
	params = params.Normalize()
	q := pageQuery(params.Page, params.Size)
	setIf := func(key, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(key, v)
		}
	}
	setIf("title", params.Title)
	setIf("author", params.Author)
	setIf("content", params.Content)
	setIf("documentType", string(params.DocumentType))
	if params.StartDate != nil {
		q.Set("startDate", params.StartDate.Format(model.LocalDateTimeLayout))
	}
	if params.EndDate != nil {
		q.Set("endDate", params.EndDate.Format(model.LocalDateTimeLayout))
	}
	return q
}

func pageQuery(page, size int) url.Values {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = model.DefaultPageSize
	}
	return url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
}

// statusError maps a non-2xx response. 401 and 403 always mean the session is no longer valid.
func statusError(op, msg string, res *apiclient.Response, kind apperr.Kind) error {
	cause := fmt.Errorf("backend status %d", res.StatusCode)
	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		kind = apperr.KindAuth
	}
	return &apperr.Error{Kind: kind, Op: op, Message: msg, Err: cause}
}

func multipartBody(in UploadInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	ct := in.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, in.FileName))
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, in.File); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}
	if err := mw.WriteField("title", in.Title); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("author", in.Author); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
