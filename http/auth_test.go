package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRoute(t *testing.T) {
	ts, services := newTestServer(t)

	client := newSessionClient(t)
	resp := postJSON(t, client, ts.URL+"/signup", map[string]string{
		"username": "tes1",
		"email": "test1@test.com",
		"password": "password",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "tes1")

	user, err := services.User.ByUsername("tes1")
	require.NoError(t, err)

	// Signup signs the session in, so protected routes work right away.
	resp, err = client.Get(fmt.Sprintf("%s/users/%d/followers", ts.URL, user.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, readBody(t, resp), "Access unauthorized")
}

func TestSignupRouteDuplicate(t *testing.T) {
	ts, services := newTestServer(t)
	_, err := services.User.Signup("tes1", "test1@test.com", "password", "")
	require.NoError(t, err)

	resp := postJSON(t, newSessionClient(t), ts.URL+"/signup", map[string]string{
		"username": "tes1",
		"email": "other@test.com",
		"password": "password",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignupRouteMissingPassword(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, newSessionClient(t), ts.URL+"/signup", map[string]string{
		"username": "tes1",
		"email": "test1@test.com",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	ts, services := newTestServer(t)
	_, err := services.User.Signup("tes1", "test1@test.com", "password", "")
	require.NoError(t, err)

	// A failed login is not an error response. The client is redirected
	// to the home page, which renders the flash.
	resp := postJSON(t, newSessionClient(t), ts.URL+"/login", map[string]string{
		"username": "tes1",
		"password": "pkdsasd",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid credentials")
}

func TestLogout(t *testing.T) {
	ts, services := newTestServer(t)
	user1, err := services.User.Signup("tes1", "test1@test.com", "password", "")
	require.NoError(t, err)

	client := newSessionClient(t)
	login(t, client, ts.URL, "tes1", "password")

	resp := postJSON(t, client, ts.URL+"/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "logged out")

	// The session is anonymous again, protected routes are gated.
	resp, err = client.Get(fmt.Sprintf("%s/users/%d/followers", ts.URL, user1.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Access unauthorized")
}

func TestCreateMessageRoute(t *testing.T) {
	ts, services := newTestServer(t)
	user1, err := services.User.Signup("tes1", "test1@test.com", "password", "")
	require.NoError(t, err)

	client := newSessionClient(t)
	login(t, client, ts.URL, "tes1", "password")

	resp := postJSON(t, client, ts.URL+"/messages", map[string]string{"text": "testing"})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	messages, err := services.Message.ByUserID(user1.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "testing", messages[0].Text)
}

func TestDeleteMessageRouteWrongUser(t *testing.T) {
	ts, services := newTestServer(t)
	user1, err := services.User.Signup("tes1", "test1@test.com", "password", "")
	require.NoError(t, err)
	_, err = services.User.Signup("tes2", "test2@test.com", "password", "")
	require.NoError(t, err)

	msg := postMessage(t, services, user1.ID, "testing")

	// tes2 is not the author.
	client := newSessionClient(t)
	login(t, client, ts.URL, "tes2", "password")

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/messages/%d", ts.URL, msg.ID), nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	messages, err := services.Message.ByUserID(user1.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}
