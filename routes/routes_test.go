package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beast-watch/api-go/apperrors"
	"github.com/beast-watch/api-go/controllers"
	"github.com/beast-watch/api-go/middleware"
	"github.com/beast-watch/api-go/models"
	"github.com/beast-watch/api-go/services"
	"github.com/beast-watch/api-go/storage"
	"github.com/beast-watch/api-go/validation"
)

type testAPI struct {
	router *gin.Engine
	store  *storage.MemoryStore
	token  string
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Field   string            `json:"field"`
	Errors  map[string]string `json:"errors"`
}

func newTestAPI(t *testing.T, locale apperrors.Locale) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	sightings := services.NewSightingService(store, validation.NewValidator(validation.DefaultRules()))
	auth := services.NewAuthService(storage.NewMemoryReviewerDirectory(), "routes-secret", time.Hour)
	_, err := auth.EnsureReviewer(context.Background(), "ranger@example.com", "correct horse", "Ranger")
	require.NoError(t, err)

	classifier := apperrors.NewClassifier(locale, zap.NewNop())
	r := gin.New()
	SetupRoutes(r, Handlers{
		Sightings:    controllers.NewSightingController(sightings, classifier, controllers.DefaultReviewPolicy(), nil),
		Auth:         controllers.NewAuthController(auth, classifier, nil),
		RequireAuth:  middleware.AuthMiddleware(auth, classifier),
		OptionalAuth: middleware.OptionalAuthMiddleware(auth, zap.NewNop()),
	})

	api := &testAPI{router: r, store: store}
	resp, body := api.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ranger@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.Code, body.Error)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &login))
	api.token = login.Token
	return api
}

func (a *testAPI) request(t *testing.T, method, path string, payload any, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	switch p := payload.(type) {
	case nil:
	case string:
		buf.WriteString(p)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(p))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var body envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func (a *testAPI) do(t *testing.T, method, path string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return a.request(t, method, path, payload, "")
}

func (a *testAPI) admin(t *testing.T, method, path string, payload any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return a.request(t, method, path, payload, a.token)
}

func (a *testAPI) create(t *testing.T) string {
	t.Helper()

	resp, body := a.do(t, http.MethodPost, "/api/sightings", map[string]any{
		"animal_type": "bear",
		"sighted_at":  time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339),
		"lat":         35.5,
		"lng":         137.8,
		"note":        "two cubs",
	})
	require.Equal(t, http.StatusCreated, resp.Code, body.Error)

	var created struct {
		ID     string        `json:"id"`
		Status models.Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, models.StatusPending, created.Status)
	return created.ID
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)
	resp, _ := api.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestCreateAndReviewFlow(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)
	id := api.create(t)

	resp, body := api.do(t, http.MethodGet, "/api/sightings", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, string(body.Data))

	resp, body = api.admin(t, http.MethodPost, "/api/admin/sightings/"+id+"/review", map[string]any{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, resp.Code, body.Error)

	resp, body = api.do(t, http.MethodGet, "/api/sightings", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var published []models.PublishedSighting
	require.NoError(t, json.Unmarshal(body.Data, &published))
	require.Len(t, published, 1)
	assert.Equal(t, id, published[0].ID)
	assert.Equal(t, "two cubs", published[0].Note)

	resp, body = api.admin(t, http.MethodGet, "/api/admin/sightings", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var master []models.Sighting
	require.NoError(t, json.Unmarshal(body.Data, &master))
	require.Len(t, master, 1)
	assert.Equal(t, models.StatusApproved, master[0].Status)
	require.NotNil(t, master[0].ReviewedBy)
	assert.NotEmpty(t, *master[0].ReviewedBy)
}

func TestCreate_ValidationErrorNamesField(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)

	resp, body := api.do(t, http.MethodPost, "/api/sightings", map[string]any{
		"animal_type": "bear",
		"sighted_at":  time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"lat":         35.5,
		"lng":         137.8,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "sighted_at", body.Field)
	assert.Equal(t, "future date not allowed", body.Error)
}

func TestCreate_NonNumericLatitude(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)

	resp, body := api.do(t, http.MethodPost, "/api/sightings",
		`{"animal_type":"bear","sighted_at":"2026-01-01","lat":"north","lng":137.8}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "location", body.Field)
	assert.Empty(t, api.store.PublishedIDs())
}

func TestReview_RejectNeedsComment(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)
	id := api.create(t)

	resp, body := api.admin(t, http.MethodPost, "/api/admin/sightings/"+id+"/review", map[string]any{
		"status":         "rejected",
		"review_comment": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "review_comment", body.Field)

	resp, _ = api.admin(t, http.MethodPost, "/api/admin/sightings/"+id+"/review", map[string]any{
		"status":         "rejected",
		"review_comment": "duplicate",
	})
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestReview_UnknownSighting(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleJapanese)

	resp, body := api.admin(t, http.MethodPost, "/api/admin/sightings/missing/review", map[string]any{
		"status": "approved",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "投稿レビューの登録に失敗しました。再度お試しください。", body.Error)
}

func TestUpdate_ApprovedSightingRepublishes(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)
	id := api.create(t)

	resp, _ := api.admin(t, http.MethodPatch, "/api/admin/sightings/"+id, map[string]any{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp, _ = api.admin(t, http.MethodPatch, "/api/admin/sightings/"+id, map[string]any{
		"lat": 36.0,
		"lng": 137.8,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	_, body := api.do(t, http.MethodGet, "/api/sightings", nil)
	var published []models.PublishedSighting
	require.NoError(t, json.Unmarshal(body.Data, &published))
	require.Len(t, published, 1)
	assert.Equal(t, 36.0, published[0].Lat)

	resp, body = api.admin(t, http.MethodPatch, "/api/admin/sightings/"+id, map[string]any{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "status", body.Field)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)

	resp, body := api.do(t, http.MethodGet, "/api/admin/sightings", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Please sign in to continue.", body.Error)

	resp, _ = api.request(t, http.MethodGet, "/api/admin/sightings", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)

	resp, body := api.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ranger@example.com",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "The email address or password is incorrect.", body.Error)

	resp, _ = api.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestMe(t *testing.T) {
	api := newTestAPI(t, apperrors.LocaleEnglish)

	resp, body := api.admin(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &me))
	assert.Equal(t, "ranger@example.com", me.Email)
}

type failingDirectory struct {
	*storage.MemoryReviewerDirectory
	err error
}

func (d failingDirectory) FindByEmail(context.Context, string) (*models.Reviewer, error) {
	return nil, d.err
}

func TestLogin_StorageFailureHidesDriverText(t *testing.T) {
	gin.SetMode(gin.TestMode)

	missingTable := apperrors.NewStorageError(apperrors.StorageUnknown, "pg:42P01",
		errors.New(`ERROR: relation "reviewers" does not exist (SQLSTATE 42P01)`))
	dir := failingDirectory{MemoryReviewerDirectory: storage.NewMemoryReviewerDirectory(), err: missingTable}
	auth := services.NewAuthService(dir, "routes-secret", time.Hour)
	classifier := apperrors.NewClassifier(apperrors.LocaleEnglish, zap.NewNop())
	sightings := services.NewSightingService(storage.NewMemoryStore(), validation.NewValidator(validation.DefaultRules()))

	r := gin.New()
	SetupRoutes(r, Handlers{
		Sightings:    controllers.NewSightingController(sightings, classifier, controllers.DefaultReviewPolicy(), nil),
		Auth:         controllers.NewAuthController(auth, classifier, nil),
		RequireAuth:  middleware.AuthMiddleware(auth, classifier),
		OptionalAuth: middleware.OptionalAuthMiddleware(auth, zap.NewNop()),
	})
	api := &testAPI{router: r}

	resp, body := api.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ranger@example.com",
		"password": "correct horse",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "An unexpected error occurred. Please try again later.", body.Error)
	assert.NotContains(t, body.Error, "42P01")
}
