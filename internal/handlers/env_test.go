package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/confessbox/confessbox/internal/constants"
	"github.com/confessbox/confessbox/internal/database"
	"github.com/confessbox/confessbox/internal/middleware"
	"github.com/confessbox/confessbox/internal/models"
	"github.com/confessbox/confessbox/internal/repository"
	"github.com/confessbox/confessbox/internal/services"
	"github.com/confessbox/confessbox/internal/storage"
	"github.com/confessbox/confessbox/web"
)

type testEnv struct {
	db                *gorm.DB
	authService       *services.AuthService
	confessionService *services.ConfessionService
	profileService    *services.ProfileService
	uploadDir         string
	router            *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Confession{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	uploadDir := t.TempDir()
	pictures, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	confessionRepo := repository.NewConfessionRepository(db)

	env := &testEnv{
		db:                db,
		authService:       services.NewAuthService(userRepo),
		confessionService: services.NewConfessionService(userRepo, confessionRepo),
		profileService:    services.NewProfileService(userRepo, pictures, []string{"png", "jpg", "jpeg"}),
		uploadDir:         uploadDir,
	}
	env.router = newTestRouter(env, constants.DefaultMaxUploadBytes)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

// newTestRouter mirrors the route table in cmd/server/main.go with a cookie
// session store.
func newTestRouter(env *testEnv, maxUploadBytes int64) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.CurrentUser())

	authHandler := NewAuthHandler(env.authService)
	confessionHandler := NewConfessionHandler(env.confessionService, env.authService)
	profileHandler := NewProfileHandler(env.profileService, maxUploadBytes)

	r.GET("/", authHandler.Home)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/uploads/:filename", profileHandler.Picture)

	user := r.Group("/:username")
	{
		user.GET("/confess", confessionHandler.Form)
		user.POST("/confess", confessionHandler.Submit)
		user.GET("/dashboard", middleware.RequireOwner(), confessionHandler.Dashboard)
		user.GET("/profile", profileHandler.Show)
		user.GET("/profile/update", middleware.RequireOwner(), profileHandler.EditForm)
		user.POST("/profile/update", middleware.RequireOwner(), profileHandler.Update)
	}

	return r
}

func getPage(t *testing.T, r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// mergeCookies folds the Set-Cookie headers of a response into an existing
// cookie jar, later values winning, so flashes and the session survive
// across requests the way a browser would carry them.
func mergeCookies(prev []*http.Cookie, w *httptest.ResponseRecorder) []*http.Cookie {
	byName := make(map[string]*http.Cookie)
	order := make([]string, 0, len(prev)+1)
	for _, ck := range prev {
		if _, seen := byName[ck.Name]; !seen {
			order = append(order, ck.Name)
		}
		byName[ck.Name] = ck
	}
	for _, ck := range w.Result().Cookies() {
		if _, seen := byName[ck.Name]; !seen {
			order = append(order, ck.Name)
		}
		byName[ck.Name] = ck
	}
	out := make([]*http.Cookie, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name])
	}
	return out
}

func registerUser(t *testing.T, env *testEnv, email, username, password string) *models.User {
	t.Helper()
	w := postForm(t, env.router, "/register", url.Values{
		"email":    {email},
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	var user models.User
	require.NoError(t, env.db.Where("username = ?", username).First(&user).Error)
	return &user
}

func loginUser(t *testing.T, env *testEnv, username, password string) []*http.Cookie {
	t.Helper()
	w := postForm(t, env.router, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/"+username+"/dashboard", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}
