package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string, active bool) *model.User {
	t.Helper()
	user := &model.User{
		Email:        uuid.NewString() + "@example.com",
		Username:     "tester",
		PasswordHash: "hashed",
		Role:         role,
		IsApproved:   true,
		IsActive:     active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newRouter(mw *Middleware, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{mw.Authenticate()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	router.GET("/test", handlers...)
	return router
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	tokens := newTestTokenManager("secret", time.Hour)
	mw := NewMiddleware(tokens, repository.NewUserRepository(db))
	router := newRouter(mw)

	active := createTestUser(t, db, model.RoleStudent, true)
	suspended := createTestUser(t, db, model.RoleStudent, false)
	activeToken, err := tokens.Issue(active)
	require.NoError(t, err)
	suspendedToken, err := tokens.Issue(suspended)
	require.NoError(t, err)
	ghostToken, err := tokens.Issue(&model.User{ID: uuid.New(), Role: model.RoleStudent})
	require.NoError(t, err)
	// approval revoked after the token was issued
	pending := createTestUser(t, db, model.RoleTeacher, true)
	pendingToken, err := tokens.Issue(pending)
	require.NoError(t, err)
	require.NoError(t, db.Model(pending).Update("is_approved", false).Error)
	approved := createTestUser(t, db, model.RoleTeacher, true)
	approvedToken, err := tokens.Issue(approved)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Token " + activeToken, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"unknown user", "Bearer " + ghostToken, http.StatusUnauthorized},
		{"suspended user", "Bearer " + suspendedToken, http.StatusUnauthorized},
		{"unapproved teacher", "Bearer " + pendingToken, http.StatusUnauthorized},
		{"approved teacher", "Bearer " + approvedToken, http.StatusOK},
		{"valid", "Bearer " + activeToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	db := setupTestDB(t)
	tokens := newTestTokenManager("secret", time.Hour)
	mw := NewMiddleware(tokens, repository.NewUserRepository(db))
	router := newRouter(mw, RequireRoles(model.RoleTeacher, model.RoleAdmin))

	student := createTestUser(t, db, model.RoleStudent, true)
	teacher := createTestUser(t, db, model.RoleTeacher, true)

	for _, tc := range []struct {
		user *model.User
		want int
	}{
		{student, http.StatusForbidden},
		{teacher, http.StatusOK},
	} {
		token, err := tokens.Issue(tc.user)
		require.NoError(t, err)
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, tc.user.Role)
	}
}

func TestRequireRoles_WithoutUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

	RequireRoles(model.RoleAdmin)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}
