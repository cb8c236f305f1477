package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/xmlview/internal/importer"
	"github.com/dgallion1/xmlview/internal/session"
	"github.com/dgallion1/xmlview/internal/xmltree"
	"github.com/go-chi/chi/v5"
)

// handleLoadDocument accepts a multipart upload and builds a document
// session from it. The response carries the size hooks (node count, byte
// size) plus a large-input warning flag so the caller can warn or defer.
func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !importer.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	opts := xmltree.BuildOptions{PositionalPaths: s.cfg.PositionalPaths}

	var doc *xmltree.Document
	start := time.Now()
	doc, err = importer.Load(bytes.NewReader(data), filename, opts)
	s.metrics.Observe("build", time.Since(start))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	sess := &session.Session{
		ID:       session.ContentHashHex(data)[:16],
		Filename: filename,
		Doc:      doc,
		LoadedAt: time.Now(),
	}
	s.store.Put(sess)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"id":             sess.ID,
		"filename":       sess.Filename,
		"node_count":     doc.NodeCount,
		"byte_size":      doc.ByteSize,
		"large":          int64(doc.ByteSize) > s.cfg.WarnBytes,
		"expanded_paths": doc.ExpandedPaths,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": s.store.List()})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":             sess.ID,
		"filename":       sess.Filename,
		"node_count":     sess.Doc.NodeCount,
		"byte_size":      sess.Doc.ByteSize,
		"expanded_paths": sess.Doc.ExpandedPaths,
		"root":           sess.Doc.Root,
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.store.Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

// session resolves the docID URL parameter, writing a 404 when absent.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	sess := s.store.Get(chi.URLParam(r, "docID"))
	if sess == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return nil
	}
	return sess
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
