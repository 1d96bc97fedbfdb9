package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"warbler/domain"
	"warbler/errs"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/signup", s.handleSignup).Methods("POST")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("POST")
}

// signupRequest carries the credentials of a signup or login request.
type signupRequest struct {
	Username string `json:"username"`
	Email string `json:"email"`
	Password string `json:"password"`
	ImageURL string `json:"image_url"`
}

// handleSignup handles the route "POST /signup".
// It creates a new user from the submitted credentials and signs them in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user, err := s.us.Signup(req.Username, req.Email, req.Password, req.ImageURL)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := s.signIn(w, r, user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
	}
}

// handleLogin handles the route "POST /login".
// A failed login is an expected outcome, not an error: the response is a
// flash message and a redirect back to the public home page.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user, err := s.us.Authenticate(req.Username, req.Password)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if user == nil {
		s.flash(w, r, "Invalid credentials.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := s.signIn(w, r, user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	s.flash(w, r, "Hello, "+user.Username+"!")
	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
	}
}

// handleLogout handles the route "POST /logout".
// It clears the session key, leaving the session anonymous.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(r, sessionName)
	if err == nil {
		delete(session.Values, userIDKey)
		session.AddFlash("You have successfully logged out.")
		if err := session.Save(r, w); err != nil {
			errs.LogError(r, err)
		}
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// signIn stores the user's ID in the session, transitioning it from
// anonymous to authenticated.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	session, err := s.sessions.Get(r, sessionName)
	if err != nil && session == nil {
		return err
	}
	session.Values[userIDKey] = user.ID
	return session.Save(r, w)
}
