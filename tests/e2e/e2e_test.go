package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todoapp/internal/database"
	"todoapp/internal/middleware"
	"todoapp/internal/modules/auth"
	"todoapp/internal/modules/rbac"
	"todoapp/internal/modules/tasks"
	jwtsvc "todoapp/internal/pkg/jwt"
	"todoapp/internal/repository"
)

type testSuite struct {
	router      *gin.Engine
	db          *gorm.DB
	refreshRepo *repository.RefreshTokenRepository
}

type authResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	Success      bool     `json:"success"`
	Errors       []string `json:"errors"`
}

func setupSuite(t *testing.T) *testSuite {
	t.Helper()

	// Named shared-memory DSN so every pooled connection sees one database.
	db, err := database.Connect(fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err, "failed to connect test database")
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	roleRepo := repository.NewRoleRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", 15*time.Minute)

	authService := auth.NewService(userRepo, refreshRepo, j, 24*time.Hour)
	authHandler := auth.NewHandler(authService)

	taskService := tasks.NewService(taskRepo)
	taskHandler := tasks.NewHandler(taskService)

	rbacService := rbac.NewService(userRepo, roleRepo, authService)
	rbacHandler := rbac.NewHandler(rbacService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(j))
	{
		taskHandler.RegisterRoutes(protected)

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminOnly())
		rbacHandler.RegisterRoutes(admin)
	}

	return &testSuite{router: r, db: db, refreshRepo: refreshRepo}
}

func (s *testSuite) post(t *testing.T, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testSuite) get(t *testing.T, path string, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeAuth(t *testing.T, w *httptest.ResponseRecorder) authResponse {
	t.Helper()

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func register(t *testing.T, s *testSuite, email, username, password string) authResponse {
	w := s.post(t, "/api/v1/auth/register", gin.H{
		"email":    email,
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeAuth(t, w)
}

func login(t *testing.T, s *testSuite, email, password string) authResponse {
	w := s.post(t, "/api/v1/auth/login", gin.H{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeAuth(t, w)
}

func refresh(t *testing.T, s *testSuite, token, refreshToken string) *httptest.ResponseRecorder {
	return s.post(t, "/api/v1/auth/refresh-token", gin.H{
		"token":        token,
		"refreshToken": refreshToken,
	}, "")
}

func TestAuthFlow_RegisterLoginRefreshReuse(t *testing.T) {
	s := setupSuite(t)

	// register yields the first pair
	pair1 := register(t, s, "user@x.com", "user", "pw123456")
	assert.True(t, pair1.Success)
	assert.NotEmpty(t, pair1.Token)
	assert.NotEmpty(t, pair1.RefreshToken)

	// login yields a second pair
	pair2 := login(t, s, "user@x.com", "pw123456")
	assert.True(t, pair2.Success)
	assert.NotEqual(t, pair1.RefreshToken, pair2.RefreshToken)

	// refreshing the second pair yields a third
	w := refresh(t, s, pair2.Token, pair2.RefreshToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pair3 := decodeAuth(t, w)
	assert.True(t, pair3.Success)
	assert.NotEqual(t, pair2.RefreshToken, pair3.RefreshToken)

	// the redeemed row is flagged used
	old, err := s.refreshRepo.GetByToken(context.Background(), pair2.RefreshToken)
	require.NoError(t, err)
	assert.True(t, old.IsUsed)

	// redeeming the second pair again must fail as a replay
	w = refresh(t, s, pair2.Token, pair2.RefreshToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeAuth(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "Token has been used")
}

func TestAuthFlow_DuplicateEmail(t *testing.T) {
	s := setupSuite(t)

	register(t, s, "dup@x.com", "first", "pw123456")

	w := s.post(t, "/api/v1/auth/register", gin.H{
		"email":    "dup@x.com",
		"username": "second",
		"password": "pw123456",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code)
	resp := decodeAuth(t, w)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Errors, "Email is already in use")
}

func TestAuthFlow_CrossPairedTokensRejected(t *testing.T) {
	s := setupSuite(t)

	register(t, s, "cross@x.com", "cross", "pw123456")
	pairA := login(t, s, "cross@x.com", "pw123456")
	pairB := login(t, s, "cross@x.com", "pw123456")

	// access token of A with the refresh token of B: the ledger row's
	// jwt_id does not match the presented jti
	w := refresh(t, s, pairA.Token, pairB.RefreshToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeAuth(t, w)
	assert.Contains(t, resp.Errors, "Token does not match")
}

func TestAuthFlow_RevokedTokenRejected(t *testing.T) {
	s := setupSuite(t)

	register(t, s, "rev@x.com", "rev", "pw123456")
	pair := login(t, s, "rev@x.com", "pw123456")

	ok, err := s.refreshRepo.RevokeByToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, ok)

	w := refresh(t, s, pair.Token, pair.RefreshToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeAuth(t, w)
	assert.Contains(t, resp.Errors, "Token has been revoked")
}

func TestAuthFlow_UnknownRefreshToken(t *testing.T) {
	s := setupSuite(t)

	register(t, s, "ghost@x.com", "ghost", "pw123456")
	pair := login(t, s, "ghost@x.com", "pw123456")

	w := refresh(t, s, pair.Token, "no-such-refresh-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeAuth(t, w)
	assert.Contains(t, resp.Errors, "Token does not exist")
}

func TestAuthFlow_BadLogin(t *testing.T) {
	s := setupSuite(t)

	register(t, s, "badpw@x.com", "badpw", "pw123456")

	w := s.post(t, "/api/v1/auth/login", gin.H{
		"email":    "badpw@x.com",
		"password": "wrong-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeAuth(t, w)
	assert.Contains(t, resp.Errors, "Invalid login request")
}

func TestTasks_CRUDAndTenancy(t *testing.T) {
	s := setupSuite(t)

	alice := register(t, s, "alice@x.com", "alice", "pw123456")
	bob := register(t, s, "bob@x.com", "bob", "pw123456")

	// unauthenticated requests bounce
	w := s.get(t, "/api/v1/tasks", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// alice creates a task
	w = s.post(t, "/api/v1/tasks", gin.H{"title": "write report"}, alice.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Task struct {
				ID int64 `json:"id"`
			} `json:"task"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.Data.Task.ID)

	// alice sees it, bob does not
	w = s.get(t, "/api/v1/tasks", alice.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "write report")

	w = s.get(t, "/api/v1/tasks", bob.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "write report")

	// bob cannot read alice's task by id either
	w = s.get(t, fmt.Sprintf("/api/v1/tasks/%d", created.Data.Task.ID), bob.Token)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_RequiresRole(t *testing.T) {
	s := setupSuite(t)

	pair := register(t, s, "pleb@x.com", "pleb", "pw123456")

	w := s.get(t, "/api/v1/admin/roles", pair.Token)
	require.Equal(t, http.StatusForbidden, w.Code)
}
