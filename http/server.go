package http

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"warbler/database"
	"warbler/domain"
	"warbler/errs"
)

const (
	// sessionName is the name of the session cookie.
	sessionName = "warbler"
	// userIDKey is the session key holding the signed-in user's ID.
	// No value under this key means the request is anonymous.
	userIDKey = "curr_user"
)

// Server provides the http functionality of this app, namely routing,
// request handling, and middleware. It also performs authentication and
// authorization before handing things over to one of the database services.
type Server struct {
	router *mux.Router
	sessions *sessions.CookieStore
	us domain.UserService
	ms domain.MessageService
	fs domain.FollowService
	ls domain.LikeService
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(sessionKey string, isProd bool, services *database.Services) *Server {
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path: "/",
		HttpOnly: true,
		Secure: isProd,
	}

	// Construct a new Server with a gorilla router and the services passed in.
	s := &Server{
		router: mux.NewRouter(),
		sessions: store,
		us: services.User,
		ms: services.Message,
		fs: services.Follow,
		ls: services.Like,
	}

	s.router.HandleFunc("/", s.handleHome).Methods("GET")

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the app.
	s.registerUserRoutes(s.router)
	s.registerMessageRoutes(s.router)
	s.registerLikeRoutes(s.router)

	// Set up middleware that needs to run on every request.
	s.router.Use(setContentTypeJSON, logRequests, s.checkUser)
	return s
}

// ServeHTTP makes the server usable anywhere an http.Handler is,
// including httptest servers.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	log.Fatal(http.ListenAndServe(":"+strconv.Itoa(port), s.router))
}

// handleHome handles the route "GET /". It's the public landing page and
// the place where flash messages queued up by redirects get rendered.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"message": "welcome home",
	}
	session, err := s.sessions.Get(r, sessionName)
	if err == nil {
		if flashes := session.Flashes(); len(flashes) > 0 {
			response["flashes"] = flashes
			// Reading flashes consumes them, save to persist that.
			if err := session.Save(r, w); err != nil {
				errs.LogError(r, err)
			}
		}
	}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
	}
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps a ResponseWriter to capture the status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// The logRequests middleware logs every request with method, path,
// resulting status and duration.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{
			ResponseWriter: w,
			status: http.StatusOK,
		}
		next.ServeHTTP(rec, r)
		slog.Info("request processed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// checkUser resolves the session to a signed-in user on every request.
// If the session holds a valid user ID, the user is loaded and stored in
// the request context. Otherwise the request proceeds as anonymous.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessions.Get(r, sessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		id, ok := session.Values[userIDKey].(int)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByID(id)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(s.setUserInContext(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth refuses anonymous requests to protected handlers. The
// refusal is not an error: the request gets a flash message and a
// redirect to the public home page, where the flash is rendered.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.getUserFromContext(r.Context())
		if user == nil {
			s.flash(w, r, "Access unauthorized.")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// flash queues a message in the session for the next rendered page.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, message string) {
	session, err := s.sessions.Get(r, sessionName)
	if err != nil && session == nil {
		return
	}
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		errs.LogError(r, err)
	}
}

type contextKey string

const userContextKey contextKey = "user"

func (s *Server) setUserInContext(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func (s *Server) getUserFromContext(ctx context.Context) *domain.User {
	if temp := ctx.Value(userContextKey); temp != nil {
		if user, ok := temp.(*domain.User); ok {
			return user
		}
	}
	return nil
}
