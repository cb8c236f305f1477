package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/xmlview/internal/search"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	q := r.URL.Query()
	term := q.Get("term")
	opts := search.Options{
		CaseSensitive: q.Get("case_sensitive") == "true",
		WholeWord:     q.Get("whole_word") == "true",
		UseRegex:      q.Get("regex") == "true",
		SearchIn:      search.Scope(q.Get("in")),
	}

	start := time.Now()
	res, err := search.Search(sess.Doc, term, opts)
	s.metrics.Observe("search", time.Since(start))
	if err != nil {
		var patternErr *search.InvalidPatternError
		var scopeErr *search.InvalidScopeError
		switch {
		case errors.Is(err, search.ErrMissingInput):
			jsonError(w, "term query parameter is required", http.StatusBadRequest)
		case errors.As(err, &patternErr):
			jsonError(w, patternErr.Error(), http.StatusBadRequest)
		case errors.As(err, &scopeErr):
			jsonError(w, scopeErr.Error(), http.StatusBadRequest)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"term":            term,
		"match_count":     len(res.MatchedPaths),
		"matched_paths":   res.MatchedPaths,
		"expansion_paths": res.ExpansionPaths,
	})
}
