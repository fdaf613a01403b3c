package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/copywriter/internal/generator"
	"github.com/mmynk/copywriter/internal/middleware"
	"github.com/mmynk/copywriter/internal/models"
	"github.com/mmynk/copywriter/internal/service"
	"github.com/mmynk/copywriter/internal/storage"
)

type homePage struct {
	UserName     string
	Tiers        []generator.Tier
	Descriptions []*models.Description
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	list, err := s.descriptions.List(r.Context(), userID)
	if err != nil {
		s.logger.Error("List descriptions failed", "user_id", userID, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Could not load your descriptions.", homePath)
		return
	}

	s.render(w, http.StatusOK, "home.html", homePage{
		UserName:     middleware.GetUserName(r.Context()),
		Tiers:        generator.Tiers(),
		Descriptions: list,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	_, err := s.descriptions.Create(r.Context(), userID,
		r.FormValue("product_name"),
		r.FormValue("comment"),
		r.FormValue("tier"),
	)
	if err != nil {
		s.writeError(w, err)
		return
	}

	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	d, err := s.descriptions.Get(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.render(w, http.StatusOK, "edit.html", d)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	err := s.descriptions.Update(r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		r.FormValue("product_name"),
		r.FormValue("text"),
	)
	if err != nil {
		s.writeError(w, err)
		return
	}

	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.descriptions.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	http.Redirect(w, r, homePath, http.StatusSeeOther)
}

// writeError maps service errors to a status and a message linking home.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "This description does not exist!", homePath)
	case errors.Is(err, service.ErrEmptyProductName):
		writeMessage(w, http.StatusBadRequest, "Product name is required.", homePath)
	case errors.Is(err, generator.ErrInvalidTier):
		writeMessage(w, http.StatusBadRequest, "Invalid description type.", homePath)
	case errors.Is(err, generator.ErrUpstream):
		writeMessage(w, http.StatusBadGateway, "The text generation service failed, please try again.", homePath)
	default:
		s.logger.Error("Request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Something went wrong.", homePath)
	}
}
