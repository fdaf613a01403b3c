package web

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"time"
)

// render executes a named template into a buffer first so a template error
// never leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("Template render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// writeMessage replies with a short message and a link back to href.
func writeMessage(w http.ResponseWriter, status int, msg, href string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `%s <a href="%s">click to go back</a>`, html.EscapeString(msg), html.EscapeString(href))
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     s.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cookie.Secure,
	}
	if ttl := s.sessions.TTL(); ttl > 0 {
		c.Expires = time.Now().Add(ttl)
	}
	http.SetCookie(w, c)
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cookie.Secure,
		MaxAge:   -1,
	})
}
