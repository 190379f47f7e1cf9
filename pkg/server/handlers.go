package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stagekit-dev/stagekit/pkg/state"
	"github.com/stagekit-dev/stagekit/pkg/view"
)

// stateResponse is the body of GET /state.
type stateResponse struct {
	States []string `json:"states"`
}

// structureResponse is the body of GET /structure.
type structureResponse struct {
	Views []string `json:"views"`
}

// transitionRequest is the body of POST /transition.
type transitionRequest struct {
	// States are the path expressions to activate.
	States []string `json:"states"`

	// Show selects the non-animated switch instead of a transition.
	Show bool `json:"show,omitempty"`

	// Params are caller-defined animation parameters applied to every
	// dispatched transition.
	Params map[string]any `json:"params,omitempty"`
}

// transitionResponse is the body of a successful POST /transition.
type transitionResponse struct {
	Dispatched bool `json:"dispatched"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	minimise := r.URL.Query().Get("minimise") == "1"
	s.mu.Lock()
	states := s.eng.ExportState(minimise)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stateResponse{States: states})
}

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	views := s.eng.ExportStructure()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, structureResponse{Views: views})
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
		return
	}
	if len(req.States) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "states is empty"})
		return
	}

	s.mu.Lock()
	var dispatched bool
	var err error
	if req.Show {
		dispatched, err = s.eng.ShowState(r.Context(), req.States)
	} else {
		var recs []*view.Record
		if len(req.Params) > 0 {
			recs = append(recs, &view.Record{Params: req.Params})
		}
		dispatched, err = s.eng.TransitionTo(r.Context(), req.States, recs...)
	}
	s.mu.Unlock()

	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{Dispatched: dispatched})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	c := s.hub.add(conn)

	// Send the current state as the first message so the client does not
	// wait for a change to learn where things stand.
	s.mu.Lock()
	states := s.eng.ExportState(false)
	s.mu.Unlock()
	c.send(states)

	go c.writePump()
	go c.readPump()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, state.ErrUnresolvedPath):
		return http.StatusNotFound
	case errors.Is(err, state.ErrRoleMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
