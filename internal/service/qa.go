package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"docportal/internal/apiclient"
	"docportal/internal/apperr"
	"docportal/internal/config"
	"docportal/internal/model"
)

const (
	msgAskFailed      = "Failed to get an answer"
	msgSnippetsFailed = "Failed to extract snippets"
)

// QAService asks the backend questions about the indexed documents.
type QAService interface {
	// Ask posts a question and returns the most relevant snippets.
	Ask(ctx context.Context, question, token string) (*model.QuestionResponse, error)

	// SearchKeyword returns documents matching a keyword.
	SearchKeyword(ctx context.Context, keyword string, page, size int, token string) (*model.Page[model.Document], error)

	// Snippets extracts passages of one document that mention the keyword.
	Snippets(ctx context.Context, documentID int64, keyword, token string) (*model.QuestionResponse, error)
}

type qaService struct {
	api *apiclient.Client
	cfg config.QAConfig
}

// NewQAService constructs a new QAService. Zero config values fall back to 5 results of 200 characters.
func NewQAService(api *apiclient.Client, cfg config.QAConfig) QAService {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.SnippetLength <= 0 {
		cfg.SnippetLength = 200
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = model.DefaultPageSize
	}
	return &qaService{api: api, cfg: cfg}
}

func (s *qaService) Ask(ctx context.Context, question, token string) (*model.QuestionResponse, error) {
	const op = "qa.Ask"
	if token == "" {
		return nil, ErrTokenRequired
	}
	body, err := apiclient.JSONBody(model.QuestionRequest{
		Question:      strings.TrimSpace(question),
		MaxResults:    s.cfg.MaxResults,
		SnippetLength: s.cfg.SnippetLength,
	})
	if err != nil {
		return nil, apperr.Network(op, msgAskFailed, err)
	}

	res, err := s.api.Do(ctx, apiclient.Request{
		Endpoint:    "qa.ask",
		Method:      http.MethodPost,
		Path:        "/api/qa/ask",
		Query:       pageQuery(0, s.cfg.PageSize),
		Token:       token,
		Body:        body,
		ContentType: "application/json",
	})
	if err != nil {
		return nil, apperr.Network(op, msgAskFailed, err)
	}
	if !res.OK() {
		return nil, statusError(op, msgAskFailed, res, apperr.KindNetwork)
	}
	out, err := apiclient.Decode[model.QuestionResponse](s.api, res.Body)
	if err != nil {
		return nil, apperr.Network(op, msgAskFailed, err)
	}
	return &out, nil
}

func (s *qaService) SearchKeyword(ctx context.Context, keyword string, page, size int, token string) (*model.Page[model.Document], error) {
	const op = "qa.SearchKeyword"
	if token == "" {
		return nil, ErrTokenRequired
	}
	q := pageQuery(page, size)
	q.Set("keyword", strings.TrimSpace(keyword))

	res, err := s.api.Do(ctx, apiclient.Request{
		Endpoint: "qa.search",
		Method:   http.MethodGet,
		Path:     "/api/qa/search",
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

func (s *qaService) Snippets(ctx context.Context, documentID int64, keyword, token string) (*model.QuestionResponse, error) {
	const op = "qa.Snippets"
	if token == "" {
		return nil, ErrTokenRequired
	}
	if documentID <= 0 {
		return nil, ErrIDRequired
	}

	res, err := s.api.Do(ctx, apiclient.Request{
		Endpoint: "qa.snippets",
		Method:   http.MethodGet,
		Path:     "/api/qa/snippets/" + strconv.FormatInt(documentID, 10),
		Query:    url.Values{"keyword": {strings.TrimSpace(keyword)}},
		Token:    token,
	})
	if err != nil {
		return nil, apperr.Network(op, msgSnippetsFailed, err)
	}
	if !res.OK() {
		return nil, statusError(op, msgSnippetsFailed, res, apperr.KindNotFound)
	}
	out, err := apiclient.Decode[model.QuestionResponse](s.api, res.Body)
	if err != nil {
		return nil, apperr.Network(op, msgSnippetsFailed, err)
	}
	return &out, nil
}
