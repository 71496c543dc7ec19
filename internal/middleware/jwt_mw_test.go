package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jinstore/internal/model"
	"jinstore/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo implements repository.UserRepository over a fixed user set
type fakeUserRepo struct {
	users map[int]*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (f *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) { return nil, nil }

func (f *fakeUserRepo) Delete(_ context.Context, _ int) error { return nil }

func (f *fakeUserRepo) UpdateRole(_ context.Context, _ int, _ string) error { return nil }

func (f *fakeUserRepo) UpdateRefreshToken(_ context.Context, _ int, _ *string) error { return nil }

func testSetup(users map[int]*model.User, extraMW ...gin.HandlerFunc) (*gin.Engine, *utils.JWTUtil) {
	gin.SetMode(gin.TestMode)
	jwtUtil := utils.NewJWTUtil("test-secret", time.Hour, time.Hour)
	repo := &fakeUserRepo{users: users}

	router := gin.New()
	handlers := []gin.HandlerFunc{JWTAuthMiddleware(jwtUtil, repo)}
	handlers = append(handlers, extraMW...)
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := c.Get(AuthUserKey)
		role, _ := c.Get(AuthRoleKey)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	router.GET("/probe", handlers...)
	return router, jwtUtil
}

func doProbe(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_MissingCookie(t *testing.T) {
	router, _ := testSetup(nil)

	w := doProbe(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	router, _ := testSetup(nil)

	w := doProbe(router, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	users := map[int]*model.User{
		1: {ID: 1, Email: "alice@example.com", Username: "alice", Role: model.RoleCustomer},
	}
	router, jwtUtil := testSetup(users)

	token, err := jwtUtil.GenerateAccessToken(1, "alice@example.com", "alice", model.RoleCustomer)
	require.NoError(t, err)

	w := doProbe(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
	assert.Contains(t, w.Body.String(), `"role":"CUSTOMER"`)
}

func TestJWTAuthMiddleware_DeletedUser(t *testing.T) {
	// Token is still valid but the record is gone
	router, jwtUtil := testSetup(nil)

	token, err := jwtUtil.GenerateAccessToken(1, "alice@example.com", "alice", model.RoleCustomer)
	require.NoError(t, err)

	w := doProbe(router, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_RoleFromStore(t *testing.T) {
	// The attached role comes from the stored record, not the token claims
	users := map[int]*model.User{
		1: {ID: 1, Email: "alice@example.com", Username: "alice", Role: model.RoleAdmin},
	}
	router, jwtUtil := testSetup(users)

	token, err := jwtUtil.GenerateAccessToken(1, "alice@example.com", "alice", model.RoleCustomer)
	require.NoError(t, err)

	w := doProbe(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"ADMIN"`)
}

func TestAdminMiddleware_AdmitsAdminRejectsCustomer(t *testing.T) {
	users := map[int]*model.User{
		1: {ID: 1, Email: "admin@example.com", Username: "admin", Role: model.RoleAdmin},
		2: {ID: 2, Email: "alice@example.com", Username: "alice", Role: model.RoleCustomer},
	}
	router, jwtUtil := testSetup(users, AdminMiddleware())

	adminToken, err := jwtUtil.GenerateAccessToken(1, "admin@example.com", "admin", model.RoleAdmin)
	require.NoError(t, err)
	customerToken, err := jwtUtil.GenerateAccessToken(2, "alice@example.com", "alice", model.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doProbe(router, adminToken).Code)
	assert.Equal(t, http.StatusForbidden, doProbe(router, customerToken).Code)
}
