package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ykarimov/authgate/internal/config"
	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/mock"
	"github.com/ykarimov/authgate/internal/service"
	"github.com/ykarimov/authgate/models"
)

// newTestRouter wires real auth and user services over a mocked repository
// and returns the fully initialised router, so requests exercise the same
// middleware chain as production.
func newTestRouter(t *testing.T) (*mock.MockUserRepository, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	cfg := &config.StructuredConfig{
		Auth: config.Auth{
			TokenSignKey:      "test-sign-key",
			TokenIssuer:       "authgate-test",
			TokenDuration:     time.Hour,
			BcryptCost:        bcrypt.MinCost,
			MinPasswordLength: 8,
			DefaultRole:       "user",
			CookieName:        "token",
		},
		Server: config.Server{
			HTTPAddress: "localhost:3000",
			ClientURL:   "http://localhost:5173",
		},
	}

	log := logger.Nop()
	services := &service.Services{
		AuthService: service.NewAuthService(repo, cfg.Auth, log),
		UserService: service.NewUserService(repo, log),
	}

	return repo, NewHandler(services, cfg, log).Init()
}

// do routes a request through the router and records the response.
func do(router http.Handler, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// loginAs drives a real login through the router and returns the session cookie.
func loginAs(t *testing.T, router http.Handler, repo *mock.MockUserRepository, user models.User, password string) *http.Cookie {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user.PasswordHash = string(hash)

	repo.EXPECT().FindUserByEmail(gomock.Any(), user.Email).Return(user, nil)

	rec := do(router, http.MethodPost, "/api/auth/login",
		`{"email":"`+user.Email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func TestRoutes_Health(t *testing.T) {
	_, router := newTestRouter(t)

	rec := do(router, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running!")
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"), "every response carries a trace id")
}

func TestRoutes_RegisterLoginCheckUserFlow(t *testing.T) {
	repo, router := newTestRouter(t)

	stored := models.User{UserID: 1, Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}

	// register persists the account with a hashed password
	repo.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, u models.User) (models.User, error) {
			assert.NotEqual(t, "longpassword1", u.PasswordHash)
			stored.PasswordHash = u.PasswordHash
			return stored, nil
		})

	rec := do(router, http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"Alice@Example.COM","password":"longpassword1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// login with the registered credentials returns a session cookie
	repo.EXPECT().FindUserByEmail(gomock.Any(), "alice@example.com").Return(stored, nil)

	rec = do(router, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"longpassword1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loginResp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	assert.NotEmpty(t, loginResp.Token)
	assert.NotContains(t, rec.Body.String(), stored.PasswordHash)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// the cookie authenticates the session check
	repo.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(stored, nil)

	rec = do(router, http.MethodGet, "/api/auth/check-user", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var checkResp models.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkResp))
	assert.Equal(t, "alice@example.com", checkResp.User.Email)
}

func TestRoutes_ProtectedWithoutCookie(t *testing.T) {
	_, router := newTestRouter(t)

	targets := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/check-user"},
		{http.MethodPut, "/api/auth/update-profile"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodGet, "/api/admin/users/1"},
		{http.MethodDelete, "/api/admin/users/1"},
		{http.MethodPut, "/api/admin/users/1"},
	}

	for _, tt := range targets {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := do(router, tt.method, tt.path, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "Unauthorized: no token provided")
		})
	}
}

func TestRoutes_AdminGateRejectsRegularUser(t *testing.T) {
	repo, router := newTestRouter(t)

	regular := models.User{UserID: 2, Email: "bob@example.com", Role: models.RoleUser}
	cookie := loginAs(t, router, repo, regular, "longpassword1")

	repo.EXPECT().FindUserByID(gomock.Any(), int64(2)).Return(regular, nil)

	rec := do(router, http.MethodGet, "/api/admin/users", "", cookie)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized: user is not an admin")
}

func TestRoutes_AdminListsUsers(t *testing.T) {
	repo, router := newTestRouter(t)

	admin := models.User{UserID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
	cookie := loginAs(t, router, repo, admin, "longpassword1")

	repo.EXPECT().FindUserByID(gomock.Any(), int64(1)).Return(admin, nil)
	repo.EXPECT().GetAllUsers(gomock.Any()).Return([]models.User{
		{UserID: 1, Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: "hash-a"},
		{UserID: 2, Email: "bob@example.com", Role: models.RoleUser, PasswordHash: "hash-b"},
	}, nil)

	rec := do(router, http.MethodGet, "/api/admin/users", "", cookie)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.UsersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)
	assert.NotContains(t, rec.Body.String(), "hash-a")
}

func TestRoutes_TamperedCookie(t *testing.T) {
	_, router := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/auth/check-user", "",
		&http.Cookie{Name: "token", Value: "tampered.jwt.value"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized: invalid or expired token")
}

func TestRoutes_UnknownMethodReports404(t *testing.T) {
	_, router := newTestRouter(t)

	// register only accepts POST; other methods must not reveal the route
	rec := do(router, http.MethodDelete, "/api/auth/register", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_UnknownPath(t *testing.T) {
	_, router := newTestRouter(t)

	rec := do(router, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_CORSPreflight(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRoutes_CORSRejectsForeignOrigin(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
