package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// maxBodyBytes bounds request bodies; they only carry a name or a keyword.
const maxBodyBytes = 4 << 10

type resultView struct {
	domain.SearchResult
	Source       string        `json:"source"`
	PreviewImage string        `json:"preview_image"`
	TitleSpans   []domain.Span `json:"title_spans"`
	SnippetSpans []domain.Span `json:"snippet_spans"`
}

type searchResponse struct {
	Subject    string               `json:"subject"`
	Query      string               `json:"query"`
	Status     domain.OutcomeStatus `json:"status"`
	Message    string               `json:"message"`
	Candidates int                  `json:"candidates"`
	Results    []resultView         `json:"results"`
	Error      string               `json:"error,omitempty"`
}

func newSearchResponse(o *domain.SearchOutcome) searchResponse {
	terms := domain.DefaultHighlightTerms()
	resp := searchResponse{
		Subject:    o.Query.Subject,
		Query:      o.Query.String(),
		Status:     o.Status(),
		Message:    o.Status().Description(),
		Candidates: o.Candidates,
		Results:    make([]resultView, 0, len(o.Results)),
		Error:      o.ErrorMessage(),
	}
	for _, r := range o.Results {
		resp.Results = append(resp.Results, resultView{
			SearchResult: r,
			Source:       r.DisplaySource(),
			PreviewImage: r.PreviewImage(),
			TitleSpans:   domain.Highlight(r.Title, terms),
			SnippetSpans: domain.Highlight(r.Snippet, terms),
		})
	}
	return resp
}

// search handles GET /api/search?q=.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	if s.ports.Search == nil {
		writeError(w, http.StatusServiceUnavailable, codeNotConfigured, domain.ErrNotConfigured.Error())
		return
	}

	outcome, err := s.ports.Search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSearchResponse(outcome))
}

// listCategories handles GET /api/categories.
func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	if !s.keywordsAvailable(w) {
		return
	}
	writeCategories(w, s.ports.Keywords.List())
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

// addCategory handles POST /api/categories.
func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	if !s.keywordsAvailable(w) {
		return
	}

	var req addCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "category name is required")
		return
	}

	cats, err := s.ports.Keywords.AddCategory(r.Context(), req.Name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cats)
}

// resetCategories handles POST /api/categories/reset.
func (s *Server) resetCategories(w http.ResponseWriter, r *http.Request) {
	if !s.keywordsAvailable(w) {
		return
	}
	cats, err := s.ports.Keywords.Reset(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCategories(w, cats)
}

// removeCategory handles DELETE /api/categories/{id}.
func (s *Server) removeCategory(w http.ResponseWriter, r *http.Request) {
	if !s.keywordsAvailable(w) {
		return
	}
	id, ok := s.requireCategory(w, r)
	if !ok {
		return
	}
	cats, err := s.ports.Keywords.RemoveCategory(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCategories(w, cats)
}

type addKeywordRequest struct {
	Keyword string `json:"keyword"`
}

// addKeyword handles POST /api/categories/{id}/keywords.
func (s *Server) addKeyword(w http.ResponseWriter, r *http.Request) {
	if !s.keywordsAvailable(w) {
		return
	}
	id, ok := s.requireCategory(w, r)
	if !ok {
		return
	}

	var req addKeywordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Keyword) == "" {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "keyword is required")
		return
	}

	cats, err := s.ports.Keywords.AddKeyword(r.Context(), id, req.Keyword)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCategories(w, cats)
}

// removeKeyword handles DELETE /api/categories/{id}/keywords/{keyword}.
func (s *Server) removeKeyword(w http.ResponseWriter, r *http.Request) {
	if !s.keywordsAvailable(w) {
		return
	}
	id, ok := s.requireCategory(w, r)
	if !ok {
		return
	}

	keyword := urlParam(r, "keyword")
	cats, err := s.ports.Keywords.RemoveKeyword(r.Context(), id, keyword)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCategories(w, cats)
}

func (s *Server) keywordsAvailable(w http.ResponseWriter) bool {
	if s.ports.Keywords == nil {
		writeError(w, http.StatusServiceUnavailable, codeStoreUnavail, "keyword service not configured")
		return false
	}
	return true
}

// requireCategory resolves {id} and answers 404 for unknown categories.
func (s *Server) requireCategory(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := urlParam(r, "id")
	if _, ok := domain.FindCategory(s.ports.Keywords.List(), id); !ok {
		writeError(w, http.StatusNotFound, codeNotFound, fmt.Sprintf("category %q not found", id))
		return "", false
	}
	return id, true
}

// urlParam returns the decoded path parameter.
func urlParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeCategories(w http.ResponseWriter, cats []domain.KeywordCategory) {
	if cats == nil {
		cats = []domain.KeywordCategory{}
	}
	writeJSON(w, http.StatusOK, cats)
}
