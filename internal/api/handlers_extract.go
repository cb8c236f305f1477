package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/xmlview/internal/extract"
	"github.com/dgallion1/xmlview/internal/session"
	"github.com/dgallion1/xmlview/internal/xmltree"
)

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	q, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	root, err := s.runExtract(sess, q)
	if err != nil {
		writeExtractError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"result_count": len(root.Children),
		"root":         root,
		"xml":          xmltree.MarshalIndent(root),
	})
}

func (s *Server) handleExtractPreview(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	q, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	start := time.Now()
	preview, err := extract.PreviewQuery(sess.Doc, q)
	s.metrics.Observe("extract_preview", time.Since(start))
	if err != nil {
		writeExtractError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(preview)
}

// handleExtractDownload serves the result document as an XML attachment
// named after the source file. The query arrives as query parameters so
// the link works as a plain browser download.
func (s *Server) handleExtractDownload(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	v := r.URL.Query()
	q := extract.Query{
		Term:              v.Get("term"),
		Basis:             extract.Basis(v.Get("basis")),
		SpecificElement:   v.Get("element"),
		SpecificAttribute: v.Get("attribute"),
		IncludeAncestors:  v.Get("ancestors") == "true",
		PreserveStructure: v.Get("preserve") == "true",
	}
	if q.Basis == "" {
		q.Basis = extract.BasisElementName
	}

	root, err := s.runExtract(sess, q)
	if err != nil {
		writeExtractError(w, err)
		return
	}

	name := sess.Filename
	if name == "" {
		name = extract.DefaultSourceName
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "extracted-"+name))
	fmt.Fprintln(w, xmltree.MarshalIndent(root))
}

func (s *Server) runExtract(sess *session.Session, q extract.Query) (*xmltree.Node, error) {
	start := time.Now()
	root, err := extract.Extract(sess.Doc, q, sess.Filename)
	s.metrics.Observe("extract", time.Since(start))
	return root, err
}

func (s *Server) decodeQuery(w http.ResponseWriter, r *http.Request) (extract.Query, bool) {
	var q extract.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		jsonError(w, "invalid query body: "+err.Error(), http.StatusBadRequest)
		return q, false
	}
	if q.Basis == "" {
		q.Basis = extract.BasisElementName
	}
	return q, true
}

func writeExtractError(w http.ResponseWriter, err error) {
	if errors.Is(err, extract.ErrMissingInput) {
		jsonError(w, "term is required", http.StatusBadRequest)
		return
	}
	jsonError(w, err.Error(), http.StatusInternalServerError)
}
