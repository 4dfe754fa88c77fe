package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/kumarlokesh/detective-quest/internal/game"
	"github.com/kumarlokesh/detective-quest/internal/session"
	"github.com/kumarlokesh/detective-quest/internal/suspects"
)

// SessionView is the JSON representation of a session
type SessionView struct {
	ID      string        `json:"id"`
	Tier    game.Tier     `json:"tier"`
	Room    string        `json:"room"`
	Clue    string        `json:"clue,omitempty"`
	Left    string        `json:"left,omitempty"`
	Right   string        `json:"right,omitempty"`
	State   game.State    `json:"state"`
	Clues   []string      `json:"clues"`
	Verdict *game.Verdict `json:"verdict,omitempty"`
}

func newSessionView(gs *game.Session) SessionView {
	room := gs.Current()
	v := SessionView{
		ID:      gs.ID(),
		Tier:    gs.Tier(),
		Room:    room.Name,
		State:   gs.State(),
		Clues:   gs.Clues().InOrder(),
		Verdict: gs.Verdict(),
	}
	if gs.Tier().CollectsClues() {
		v.Clue = room.Clue
	}
	if room.Left != nil {
		v.Left = room.Left.Name
	}
	if room.Right != nil {
		v.Right = room.Right.Name
	}
	return v
}

type createRequest struct {
	Tier string `json:"tier"`
}

type moveRequest struct {
	Choice string `json:"choice"`
}

type accuseRequest struct {
	Suspect string `json:"suspect"`
}

// decodeBody decodes an optional JSON body into dst
func decodeBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.respondError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listSuspects(w http.ResponseWriter, r *http.Request) {
	evidence := s.cs.Table.Associations()
	if evidence == nil {
		evidence = []suspects.Association{}
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"suspects": s.cs.Roster,
		"evidence": evidence,
	})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	tier := s.opts.Tier
	if req.Tier != "" {
		t, err := game.ParseTier(req.Tier)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err)
			return
		}
		tier = t
	}

	gs := game.NewSession(s.cs.Tree,
		game.WithID(uuid.NewString()),
		game.WithTier(tier),
		game.WithThreshold(s.opts.Threshold),
		game.WithLogger(s.logger),
	)
	if err := s.store.Put(r.Context(), gs.Snapshot()); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info().Str("session", gs.ID()).Str("tier", string(tier)).Msg("Session created")
	s.respond(w, http.StatusCreated, newSessionView(gs))
}

// load restores the session named in the route, writing the error response
// itself when it fails
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id := mux.Vars(r)["id"]

	snap, err := s.store.Get(r.Context(), id)
	if errors.Is(err, session.ErrSessionNotFound) {
		s.respondError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return nil, false
	}

	gs, err := game.Restore(s.cs.Tree, snap, s.logger)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, fmt.Errorf("corrupt session %s: %w", id, err))
		return nil, false
	}
	return gs, true
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	gs, ok := s.load(w, r)
	if !ok {
		return
	}
	s.respond(w, http.StatusOK, newSessionView(gs))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	unlock := s.lock(id)
	defer unlock()

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) move(w http.ResponseWriter, r *http.Request) {
	unlock := s.lock(mux.Vars(r)["id"])
	defer unlock()

	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	choice, err := game.ParseChoice(req.Choice)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	gs, ok := s.load(w, r)
	if !ok {
		return
	}

	err = gs.Apply(choice)
	switch {
	case errors.Is(err, game.ErrWalkOver):
		s.respondError(w, http.StatusConflict, err)
		return
	case errors.Is(err, game.ErrNoPath), errors.Is(err, game.ErrInvalidChoice):
		s.respondError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.store.Put(r.Context(), gs.Snapshot()); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respond(w, http.StatusOK, newSessionView(gs))
}

func (s *Server) listClues(w http.ResponseWriter, r *http.Request) {
	gs, ok := s.load(w, r)
	if !ok {
		return
	}
	s.respond(w, http.StatusOK, map[string]interface{}{
		"clues": gs.Clues().InOrder(),
	})
}

func (s *Server) accuse(w http.ResponseWriter, r *http.Request) {
	unlock := s.lock(mux.Vars(r)["id"])
	defer unlock()

	var req accuseRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	gs, ok := s.load(w, r)
	if !ok {
		return
	}

	v, err := gs.Accuse(s.cs.Table, req.Suspect)
	switch {
	case errors.Is(err, game.ErrNoVerdict):
		s.respondError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, game.ErrWalkInProgress), errors.Is(err, game.ErrAlreadyJudged):
		s.respondError(w, http.StatusConflict, err)
		return
	case err != nil:
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.store.Put(r.Context(), gs.Snapshot()); err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respond(w, http.StatusOK, v)
}
