package web

import (
	"errors"
	"net/http"

	"github.com/mmynk/copywriter/internal/auth"
	"github.com/mmynk/copywriter/internal/models"
)

type authPage struct {
	Title  string
	Action string
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login.html", authPage{Title: "Register", Action: "/registrar"})
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login.html", authPage{Title: "Log in", Action: loginPath})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	s.logger.Info("Register request", "name", name)

	user, err := s.auth.Register(r.Context(), name, r.FormValue("password"))
	switch {
	case errors.Is(err, auth.ErrNameExists):
		s.logger.Warn("Registration rejected", "name", name, "error", err)
		writeMessage(w, http.StatusConflict, "User already exists.", "/registrar")
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Name and password are required.", "/registrar")
		return
	case err != nil:
		s.logger.Error("Registration failed", "name", name, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Registration failed.", "/registrar")
		return
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "name", user.Name)
	s.startSession(w, r, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")

	user, err := s.auth.Authenticate(r.Context(), name, r.FormValue("password"))
	if err != nil {
		s.logger.Warn("Login failed", "name", name, "error", err)
		writeMessage(w, http.StatusUnauthorized, "Incorrect user name or password.", loginPath)
		return
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "name", user.Name)
	s.startSession(w, r, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, loginPath, http.StatusFound)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := s.sessions.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate session", "user_id", user.ID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Could not start a session.", loginPath)
		return
	}
	s.setSessionCookie(w, token)
	http.Redirect(w, r, homePath, http.StatusSeeOther)
}
