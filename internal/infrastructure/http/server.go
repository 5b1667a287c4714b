// Package http provides the HTTP server infrastructure.
// Framework/driver layer - outermost circle; delegates all decision logic
// to the assess usecase and only translates errors to JSON envelopes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitasense/vitasense-go/internal/domain/entities"
	"github.com/vitasense/vitasense-go/internal/domain/ports"
	"github.com/vitasense/vitasense-go/internal/domain/usecases"
)

// Server is the HTTP server for the risk assessment API and form page.
type Server struct {
	assess  *usecases.AssessUseCase
	history ports.AssessmentStore
	addr    string
}

// NewServer creates a new HTTP server.
func NewServer(assess *usecases.AssessUseCase, history ports.AssessmentStore, addr string) *Server {
	return &Server{
		assess:  assess,
		history: history,
		addr:    addr,
	}
}

// Routes wires the public endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/api/assess", s.handleAssess)
	r.Get("/api/assessments", s.handleHistory)
	r.Get("/api/health", s.handleHealth)

	return r
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("[INFO] VitaSense server starting on %s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	return server.ListenAndServe()
}

// handleAssess runs one inference transaction.
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req entities.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	assessment, err := s.assess.Assess(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// handleHistory returns the most recent assessments, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] reading assessment history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
		return
	}
	if records == nil {
		records = []entities.AssessmentRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps domain errors onto the JSON error envelope. Validation
// and encoding failures are the caller's fault; an artifact integrity
// failure is ours and gets logged loudly.
func writeError(w http.ResponseWriter, err error) {
	var (
		missing   *entities.MissingFieldError
		category  *entities.InvalidCategoryError
		numeric   *entities.NumericDomainError
		integrity *entities.ArtifactIntegrityError
	)

	switch {
	case errors.As(err, &missing), errors.As(err, &category), errors.As(err, &numeric):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &integrity):
		log.Printf("[ERROR] %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "model artifact error"})
	default:
		log.Printf("[ERROR] assessment failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// handleIndex renders a minimal assessment form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>VitaSense</title>
    <style>
        body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
        label { display: block; margin-top: .5rem; }
        #result { margin-top: 1rem; white-space: pre-wrap; font-family: monospace; }
    </style>
</head>
<body>
    <h1>VitaSense</h1>
    <p>Lifestyle health risk assessment</p>
    <form id="profile-form" onsubmit="assess(event)">
        <label>Age <input name="age" type="number" required></label>
        <label>Weight (kg) <input name="weight" type="number" step="0.1" required></label>
        <label>Height (cm) <input name="height" type="number" step="0.1" required></label>
        <label>Exercise
            <select name="exercise"><option>low</option><option>medium</option><option>high</option></select>
        </label>
        <label>Sleep (hours) <input name="sleep" type="number" step="0.1" required></label>
        <label>Sugar intake
            <select name="sugar_intake"><option>low</option><option>medium</option><option>high</option></select>
        </label>
        <label>Smoking
            <select name="smoking"><option>no</option><option>yes</option></select>
        </label>
        <label>Alcohol
            <select name="alcohol"><option>no</option><option>yes</option></select>
        </label>
        <label>Married
            <select name="married"><option>no</option><option>yes</option></select>
        </label>
        <label>Profession
            <select name="profession">
                <option>office_worker</option><option>teacher</option><option>artist</option>
                <option>engineer</option><option>healthcare</option>
            </select>
        </label>
        <button type="submit">Assess</button>
    </form>
    <div id="result"></div>

    <script>
        async function assess(e) {
            e.preventDefault();
            const form = new FormData(e.target);
            const numeric = ["age", "weight", "height", "sleep"];
            const payload = {};
            for (const [key, value] of form.entries()) {
                payload[key] = numeric.includes(key) ? Number(value) : value;
            }
            const resp = await fetch('/api/assess', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify(payload)
            });
            const data = await resp.json();
            document.getElementById('result').textContent = JSON.stringify(data, null, 2);
        }
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
