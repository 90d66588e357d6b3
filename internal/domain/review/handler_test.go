package review

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *testEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := setupEnv(t)
	handler := NewHandler(env.svc)

	r := gin.New()
	v1 := r.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(func(c *gin.Context) {
		c.Set("user_id", int64(10))
		c.Set("role", "user")
	})
	moderation := v1.Group("/moderation")
	handler.RegisterRoutes(v1, protected, moderation)
	return r, env
}

func TestSubmitHandlerRejectsInvalidFields(t *testing.T) {
	r, env := setupRouter(t)
	co := env.createCompany(t, 1)

	body := map[string]any{
		"company_id":     co.ID,
		"title":          "ab",
		"content":        "too short",
		"rating":         6,
		"service_rating": 5,
		"price_rating":   5,
		"speed_rating":   5,
		"quality_rating": 5,
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "min", resp.Error.Details["Title"])
	assert.Equal(t, "min", resp.Error.Details["Content"])
	assert.Equal(t, "lte", resp.Error.Details["Rating"])
}

func TestSubmitHandlerRejectsMalformedJSON(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitHandlerAcceptsValidPayload(t *testing.T) {
	r, env := setupRouter(t)
	co := env.createCompany(t, 1)

	body := map[string]any{
		"company_id":     co.ID,
		"title":          "Great experience",
		"content":        "The crew arrived on time and handled the whole move with genuine care.",
		"rating":         5,
		"service_rating": 5,
		"price_rating":   4,
		"speed_rating":   5,
		"quality_rating": 5,
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reviews", strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
