package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"warbler/errs"
)

// registerLikeRoutes is a helper for registering all Like routes.
func (s *Server) registerLikeRoutes(r *mux.Router) {
	// Toggle the signed-in user's like on a message.
	r.HandleFunc("/users/toggle_like/{message_id:[0-9]+}", s.requireAuth(s.handleToggleLike)).Methods("POST")
}

// handleToggleLike handles the route "POST /users/toggle_like/{message_id}".
// Each call alternates the like state of the (user, message) pair: the
// edge is created if absent and deleted if present. Anonymous calls
// never reach this handler, requireAuth redirects them without touching
// any row.
func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.Atoi(mux.Vars(r)["message_id"])
	if err != nil || messageID <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user := s.getUserFromContext(r.Context())
	if _, err := s.ls.Toggle(user.ID, messageID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
