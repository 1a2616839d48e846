package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadtrack/tracker-api/internal/middleware"
	"github.com/acadtrack/tracker-api/internal/models"
	"github.com/acadtrack/tracker-api/internal/service"
)

type fakeUserRepo struct {
	users      map[int64]*models.User
	deletedIDs []int64
	auditLogs  []*models.AuditLog
}

func (f *fakeUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	var out []models.User
	for _, u := range f.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) DeleteCascade(ctx context.Context, id int64) error {
	delete(f.users, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	f.auditLogs = append(f.auditLogs, log)
	return nil
}

func userFixture(t *testing.T) (*UserHandler, *fakeUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := &fakeUserRepo{users: map[int64]*models.User{
		1: {ID: 1, Email: "alice@example.com", Name: "Alice", Role: models.RoleStudent, PasswordHash: "hash"},
		2: {ID: 2, Email: "bob@example.com", Name: "Bob", Role: models.RoleTeacher, PasswordHash: "hash"},
	}}
	return NewUserHandler(service.NewUserService(repo, zap.NewNop())), repo
}

func TestUserHandlerListFiltersByRole(t *testing.T) {
	handler, _ := userFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/users?role=TEACHER", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data       []models.UserSummary `json:"data"`
		Pagination *models.Pagination   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "bob@example.com", envelope.Data[0].Email)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestUserHandlerListUnknownRole(t *testing.T) {
	handler, _ := userFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/users?role=WIZARD", nil)

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandlerGetSuccess(t *testing.T) {
	handler, _ := userFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data models.UserSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "alice@example.com", envelope.Data.Email)
}

func TestUserHandlerGetNotFound(t *testing.T) {
	handler, _ := userFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandlerDeleteNoContent(t *testing.T) {
	handler, repo := userFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 2, Role: models.RoleAdmin})

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{1}, repo.deletedIDs)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, int64(2), *repo.auditLogs[0].UserID)
}

func TestUserHandlerDeleteBadID(t *testing.T) {
	handler, _ := userFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/users/-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 2, Role: models.RoleAdmin})

	handler.Delete(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
