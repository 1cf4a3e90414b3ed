package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/confessbox/confessbox/internal/models"
)

func TestRegister_Success(t *testing.T) {
	env := setupTestEnv(t)

	w := postForm(t, env.router, "/register", url.Values{
		"email":    {"a@x.com"},
		"username": {"alice"},
		"password": {"pw1"},
	}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "a@x.com").First(&user).Error)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "pw1", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")))

	// The flash shows up on the login page
	follow := getPage(t, env.router, "/login", mergeCookies(nil, w))
	require.Equal(t, http.StatusOK, follow.Code)
	require.Contains(t, follow.Body.String(), "Registration successful. Please log in.")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "a@x.com", "alice", "pw1")

	w := postForm(t, env.router, "/register", url.Values{
		"email":    {"a@x.com"},
		"username": {"alice2"},
		"password": {"pw2"},
	}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/register", w.Header().Get("Location"))

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	follow := getPage(t, env.router, "/register", mergeCookies(nil, w))
	require.Contains(t, follow.Body.String(), "User exists already with this email")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "a@x.com", "alice", "pw1")

	w := postForm(t, env.router, "/register", url.Values{
		"email":    {"b@x.com"},
		"username": {"alice"},
		"password": {"pw2"},
	}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/register", w.Header().Get("Location"))

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	follow := getPage(t, env.router, "/register", mergeCookies(nil, w))
	require.Contains(t, follow.Body.String(), "Username already taken")
}

func TestRegister_MissingFields(t *testing.T) {
	env := setupTestEnv(t)

	w := postForm(t, env.router, "/register", url.Values{
		"email": {"a@x.com"},
	}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/register", w.Header().Get("Location"))

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestLogin_WithUsername(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "a@x.com", "alice", "pw1")

	cookies := loginUser(t, env, "alice", "pw1")

	dashboard := getPage(t, env.router, "/alice/dashboard", cookies)
	require.Equal(t, http.StatusOK, dashboard.Code)
	require.Contains(t, dashboard.Body.String(), "Received confessions")
}

func TestLogin_WithEmail(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "a@x.com", "alice", "pw1")

	w := postForm(t, env.router, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw1"},
	}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/alice/dashboard", w.Header().Get("Location"))
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "a@x.com", "alice", "pw1")

	for _, form := range []url.Values{
		{"username": {"alice"}, "password": {"wrong"}},
		{"email": {"a@x.com"}, "password": {"wrong"}},
		{"username": {"nobody"}, "password": {"pw1"}},
	} {
		w := postForm(t, env.router, "/login", form, nil)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/login", w.Header().Get("Location"))

		follow := getPage(t, env.router, "/login", mergeCookies(nil, w))
		require.Contains(t, follow.Body.String(), "Invalid credentials")
	}
}

func TestLogin_MissingIdentifier(t *testing.T) {
	env := setupTestEnv(t)

	w := postForm(t, env.router, "/login", url.Values{
		"password": {"pw1"},
	}, nil)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	follow := getPage(t, env.router, "/login", mergeCookies(nil, w))
	require.Contains(t, follow.Body.String(), "Please enter either username or email.")
}

func TestLogout(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "a@x.com", "alice", "pw1")
	cookies := loginUser(t, env, "alice", "pw1")

	w := getPage(t, env.router, "/logout", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	// The session is gone: the dashboard now demands a login
	cookies = mergeCookies(cookies, w)
	dashboard := getPage(t, env.router, "/alice/dashboard", cookies)
	require.Equal(t, http.StatusFound, dashboard.Code)
	require.Equal(t, "/login", dashboard.Header().Get("Location"))
}

func TestHome_RedirectsAuthenticated(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "a@x.com", "alice", "pw1")
	cookies := loginUser(t, env, "alice", "pw1")

	w := getPage(t, env.router, "/", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/alice/dashboard", w.Header().Get("Location"))
}

func TestHome_AnonymousVisitor(t *testing.T) {
	env := setupTestEnv(t)

	w := getPage(t, env.router, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Register")
}
