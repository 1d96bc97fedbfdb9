package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"warbler/domain"
	"warbler/errs"
)

func (s *Server) registerMessageRoutes(r *mux.Router) {
	// Post a new message.
	r.HandleFunc("/messages", s.requireAuth(s.handleCreateMessage)).Methods("POST")

	// Delete an existing message. Only the author may do this.
	r.HandleFunc("/messages/{id:[0-9]+}", s.requireAuth(s.handleDeleteMessage)).Methods("DELETE")
}

// handleCreateMessage handles the route "POST /messages".
// It reads the message text from the json body and stores it with the
// signed-in user as the author.
func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var message domain.Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user := s.getUserFromContext(r.Context())
	message.UserID = user.ID

	if err := s.ms.Create(&message); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&message); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteMessage handles the route "DELETE /messages/{id}".
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	message, err := s.ms.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if message.UserID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to delete this message."))
		return
	}

	if err := s.ms.Delete(message); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(message); err != nil {
		errs.LogError(r, err)
	}
}
