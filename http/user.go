package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"warbler/domain"
	"warbler/errs"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	// Show a user's profile. Existence is checked before any auth gating,
	// so a missing user is a 404 for everyone.
	r.HandleFunc("/users/{id:[0-9]+}", s.handleShowUser).Methods("GET")

	// Show the users following / followed by a user. The caller must be
	// signed in, whose profile it is doesn't matter.
	r.HandleFunc("/users/{id:[0-9]+}/followers", s.requireAuth(s.handleShowFollowers)).Methods("GET")
	r.HandleFunc("/users/{id:[0-9]+}/following", s.requireAuth(s.handleShowFollowing)).Methods("GET")

	// Create / remove a follow edge from the signed-in user.
	r.HandleFunc("/users/follow/{id:[0-9]+}", s.requireAuth(s.handleCreateFollow)).Methods("POST")
	r.HandleFunc("/users/stop-following/{id:[0-9]+}", s.requireAuth(s.handleDeleteFollow)).Methods("POST")

	// Delete the signed-in user's own account.
	r.HandleFunc("/users/delete", s.requireAuth(s.handleDeleteUser)).Methods("DELETE")
}

// handleShowUser handles the route "GET /users/{id}".
// It returns the user's profile data together with their messages, newest first.
func (s *Server) handleShowUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user, err := s.us.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
	}
}

// handleShowFollowers handles the route "GET /users/{id}/followers".
func (s *Server) handleShowFollowers(w http.ResponseWriter, r *http.Request) {
	s.showFollowList(w, r, s.fs.Followers, "followers")
}

// handleShowFollowing handles the route "GET /users/{id}/following".
func (s *Server) handleShowFollowing(w http.ResponseWriter, r *http.Request) {
	s.showFollowList(w, r, s.fs.Followings, "following")
}

// showFollowList renders one side of a user's follow edges. The list is
// read from the current edge state on every request.
func (s *Server) showFollowList(w http.ResponseWriter, r *http.Request, list func(int) ([]domain.User, error), key string) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user, err := s.us.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	users, err := list(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"user": user,
		key:    users,
	}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}

// handleCreateFollow handles the route "POST /users/follow/{id}".
// The signed-in user starts following the user in the url.
func (s *Server) handleCreateFollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || followedID <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	follower := s.getUserFromContext(r.Context())
	follow := domain.Follow{
		FollowerID: follower.ID,
		FollowedID: followedID,
	}
	if err := s.fs.Create(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&follow); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteFollow handles the route "POST /users/stop-following/{id}".
// The signed-in user stops following the user in the url.
func (s *Server) handleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || followedID <= 0 {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	follower := s.getUserFromContext(r.Context())
	follow := domain.Follow{
		FollowerID: follower.ID,
		FollowedID: followedID,
	}
	if err := s.fs.Delete(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(&follow); err != nil {
		errs.LogError(r, err)
	}
}

// handleDeleteUser handles the route "DELETE /users/delete".
// It deletes the signed-in user's account, cascading to their messages,
// follow edges and likes, and clears the session.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	if err := s.us.Delete(user.ID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	session, err := s.sessions.Get(r, sessionName)
	if err == nil {
		delete(session.Values, userIDKey)
		if err := session.Save(r, w); err != nil {
			errs.LogError(r, err)
		}
	}

	response := map[string]string{"message": "account deleted"}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}
