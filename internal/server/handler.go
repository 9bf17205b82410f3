package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Rorical/RoriBug/internal/graph"
	"github.com/Rorical/RoriBug/internal/models"
)

type ReportGenerator interface {
	Generate(ctx context.Context, application, description string) (string, error)
}

type Handler struct {
	gen ReportGenerator
}

func NewHandler(gen ReportGenerator) *Handler {
	return &Handler{gen: gen}
}

// GenerateReport reads the application name from the first message and the
// bug description from the second. Later messages are ignored.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(req.Messages) < 2 {
		http.Error(w, "expected application and description messages", http.StatusBadRequest)
		return
	}

	application := req.Messages[0].Text
	description := req.Messages[1].Text

	body, err := h.gen.Generate(r.Context(), application, description)
	if err != nil {
		var nf *graph.NotFoundError
		if errors.As(err, &nf) {
			http.Error(w, nf.Error(), http.StatusNotFound)
			return
		}
		var re *graph.ReadError
		if errors.As(err, &re) {
			log.Printf("report for %q: %v", application, err)
			http.Error(w, "graph data for this application is unreadable", http.StatusInternalServerError)
			return
		}
		log.Printf("report for %q failed: %v", application, err)
		http.Error(w, "report generation failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(models.ReportResponse{Body: body}); err != nil {
		log.Printf("write response: %v", err)
	}
}

func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
