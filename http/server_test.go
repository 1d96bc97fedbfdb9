package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"warbler/database"
	"warbler/domain"
)

// newTestServer spins up the full server over a fresh in-memory database.
// Each test gets its own schema, so no state leaks between tests.
func newTestServer(t *testing.T) (*httptest.Server, *database.Services) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Message{},
		&domain.Follow{},
		&domain.Like{},
	))

	services, err := database.NewServices(
		db,
		database.WithUser("test-pepper"),
		database.WithMessage(),
		database.WithFollow(),
		database.WithLike(),
	)
	require.NoError(t, err)

	server := NewServer("test-session-key", false, services)
	ts := httptest.NewServer(server)
	t.Cleanup(func() {
		ts.Close()
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return ts, services
}

// newSessionClient returns a client with a cookie jar, so it carries the
// session cookie across requests and through redirects.
func newSessionClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// login signs the client's session in through the login endpoint.
func login(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	require.NoError(t, err)
	resp, err := client.Post(baseURL+"/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// readBody drains and returns a response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

// postMessage stores a message directly through the service layer.
func postMessage(t *testing.T, services *database.Services, userID int, text string) *domain.Message {
	t.Helper()
	msg := &domain.Message{UserID: userID, Text: text}
	require.NoError(t, services.Message.Create(msg))
	return msg
}

// postJSON sends a json body to the given path.
func postJSON(t *testing.T, client *http.Client, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}
