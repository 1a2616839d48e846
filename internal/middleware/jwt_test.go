package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadtrack/tracker-api/internal/models"
	"github.com/acadtrack/tracker-api/internal/service"
)

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error { return nil }

type stubSessionStore struct {
	active map[string]bool
}

func (s *stubSessionStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	if s.active == nil {
		s.active = make(map[string]bool)
	}
	s.active[jti] = true
	return nil
}

func (s *stubSessionStore) Revoke(ctx context.Context, jti string) error {
	delete(s.active, jti)
	return nil
}

func (s *stubSessionStore) Active(ctx context.Context, jti string) (bool, error) {
	return s.active[jti], nil
}

func issueToken(t *testing.T) (*service.AuthService, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &stubUserRepo{user: &models.User{
		ID: 1, Email: "alice@example.com", PasswordHash: string(hash), Name: "Alice", Role: models.RoleTeacher,
	}}
	svc := service.NewAuthService(repo, &stubSessionStore{}, nil, zap.NewNop(), service.AuthConfig{
		Secret:     "secret",
		Expiration: time.Hour,
		Issuer:     "tracker-api",
	})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "password"})
	require.NoError(t, err)
	return svc, res.AccessToken
}

func guardedRouter(svc *service.AuthService, metrics *service.MetricsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded", JWT(svc, metrics), func(c *gin.Context) {
		claims := c.MustGet(ContextUserKey).(*models.JWTClaims)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	return router
}

// scrapeMetrics renders the registry through its own handler so tests can
// assert on exposed series.
func scrapeMetrics(metrics *service.MetricsService) string {
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}

func TestJWTAcceptsBearerToken(t *testing.T) {
	svc, token := issueToken(t)
	router := guardedRouter(svc, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAcceptsSessionCookie(t *testing.T) {
	svc, token := issueToken(t)
	router := guardedRouter(svc, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTRejectsMissingToken(t *testing.T) {
	svc, _ := issueToken(t)
	router := guardedRouter(svc, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	svc, token := issueToken(t)
	router := guardedRouter(svc, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Token "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsGarbageToken(t *testing.T) {
	svc, _ := issueToken(t)
	router := guardedRouter(svc, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTFallsBackToCookieOnForeignAuthHeader(t *testing.T) {
	svc, token := issueToken(t)
	router := guardedRouter(svc, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Digest username=alice")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTCountsRejections(t *testing.T) {
	svc, _ := issueToken(t)
	metrics := service.NewMetricsService()
	router := guardedRouter(svc, metrics)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := scrapeMetrics(metrics)
	assert.Contains(t, body, `auth_failures_total{reason="missing_token"} 1`)
	assert.Contains(t, body, `auth_failures_total{reason="invalid_token"} 1`)
}
