package web

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/user/book-classifier/internal/frontend/page"
)

const sessionCookie = "sid"

// refreshSeconds is how often a loading page polls for completion.
const refreshSeconds = 2

type indexData struct {
	State          page.State
	View           page.View
	RefreshSeconds int
}

func (s *Server) pageFor(w http.ResponseWriter, r *http.Request) *page.Page {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	p, id := s.sessions.Get(id)
	// Re-sent on every request so the cookie slides with the server-side TTL.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return p
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := s.pageFor(w, r).Snapshot()

	var buf bytes.Buffer
	data := indexData{State: state, View: state.View(), RefreshSeconds: refreshSeconds}
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	p := s.pageFor(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	query := r.PostFormValue("q")
	if p.Submit(r.Context(), query) {
		s.logger.Info("analysis submitted", zap.String("query", query))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
