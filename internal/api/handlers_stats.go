package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgallion1/xmlview/internal/analyze"
)

func (s *Server) handleDocumentStats(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	start := time.Now()
	stats := analyze.Analyze(sess.Doc)
	s.metrics.Observe("analyze", time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"element_counts":    stats.ElementCounts.Map(),
		"elements":          stats.ElementCounts.Entries(),
		"elements_ranked":   stats.ElementCounts.Ranked(),
		"attribute_counts":  stats.AttributeCounts.Map(),
		"attributes":        stats.AttributeCounts.Entries(),
		"attributes_ranked": stats.AttributeCounts.Ranked(),
		"depth_counts":      stats.DepthCounts,
		"max_depth":         stats.MaxDepth,
		"total_elements":    stats.TotalElements,
		"total_attributes":  stats.TotalAttributes,
	})
}

func (s *Server) handleOpStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ops": s.metrics.Snapshots()})
}
