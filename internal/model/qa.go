package model

// QuestionRequest is posted to the Q&A endpoint.
type QuestionRequest struct {
	Question      string `json:"question" validate:"required,min=3"`
	MaxResults    int    `json:"maxResults"`
	SnippetLength int    `json:"snippetLength"`
}

// Snippet is one relevant passage returned for a question.
type Snippet struct {
	DocumentID     int64   `json:"documentId" validate:"gt=0"`
	DocumentTitle  string  `json:"documentTitle"`
	Author         string  `json:"author"`
	Snippet        string  `json:"snippet"`
	RelevanceScore float64 `json:"relevanceScore"`
}

// QuestionResponse is the backend answer to a question or snippet lookup.
type QuestionResponse struct {
	Question     string    `json:"question"`
	Snippets     []Snippet `json:"snippets" validate:"dive"`
	TotalResults int       `json:"totalResults" validate:"gte=0"`
}
