package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theysh/startpage/internal/editor"
	"github.com/theysh/startpage/internal/engine"
	"github.com/theysh/startpage/internal/model"
)

// linkRequest is the body of POST /api/links and PUT /api/links/{id}.
type linkRequest struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	IconURL string `json:"iconUrl"`
}

func (l linkRequest) input() editor.Input {
	return editor.Input{Title: l.Title, URL: l.URL, IconURL: l.IconURL}
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type engineRequest struct {
	ID string `json:"id"`
}

type engineResponse struct {
	ID          engine.ID `json:"id"`
	Name        string    `json:"name"`
	Placeholder string    `json:"placeholder"`
}

func toEngineResponse(c engine.Config) engineResponse {
	return engineResponse{ID: c.ID, Name: c.Name, Placeholder: c.Placeholder}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) listLinks(w http.ResponseWriter, r *http.Request) {
	links := h.session.Links()
	if links == nil {
		links = model.Collection{}
	}
	writeJSON(w, http.StatusOK, links)
}

func (h *handler) createLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := editor.NewShortcut(req.input())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.session.AddLink(s)
	writeJSON(w, http.StatusCreated, s)
}

func (h *handler) updateLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	orig := h.session.Link(id)
	if orig == nil {
		writeError(w, http.StatusNotFound, "shortcut not found")
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := editor.EditShortcut(*orig, req.input())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.session.UpdateLink(s) {
		// Removed concurrently.
		writeError(w, http.StatusNotFound, "shortcut not found")
		return
	}
	h.icons.Forget(id)
	writeJSON(w, http.StatusOK, s)
}

func (h *handler) deleteLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.session.RemoveLink(id) {
		writeError(w, http.StatusNotFound, "shortcut not found")
		return
	}
	h.icons.Forget(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) reorderLinks(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.ReorderLink(req.From, req.To); err != nil {
		if errors.Is(err, model.ErrIndexOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.session.Links())
}

func (h *handler) listEngines(w http.ResponseWriter, r *http.Request) {
	all := engine.All()
	out := make([]engineResponse, len(all))
	for i, c := range all {
		out[i] = toEngineResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getEngine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toEngineResponse(h.session.Engine()))
}

// putEngine stores the requested id as given. Unknown ids are kept but
// resolve to the default engine, which is what the response reports.
func (h *handler) putEngine(w http.ResponseWriter, r *http.Request) {
	var req engineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.session.SelectEngine(engine.ID(req.ID))
	writeJSON(w, http.StatusOK, toEngineResponse(h.session.Engine()))
}
