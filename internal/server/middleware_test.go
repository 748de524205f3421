package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"interview-tracker/internal/config"
	"interview-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func authedEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID(), Auth(cfg, zap.NewNop()))
	engine.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"credential": CredentialFrom(c)})
	})
	return engine
}

func TestAuth_AcceptsMatchingKey(t *testing.T) {
	engine := authedEngine(&config.Config{AuthKey: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Auth-Key", "secret")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"credential":"secret"`)
}

func TestAuth_AcceptsAllowlistedReferer(t *testing.T) {
	engine := authedEngine(&config.Config{
		AuthKey:         "secret",
		AllowedFrontend: "https://tracker.example.test/",
	})

	// Trailing slashes are normalized on both sides.
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Frontend-Source", "https://tracker.example.test")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// Referer-admitted requests carry no outbound credential.
	assert.Contains(t, w.Body.String(), `"credential":""`)
}

func TestAuth_RejectsWrongKey(t *testing.T) {
	engine := authedEngine(&config.Config{AuthKey: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Auth-Key", "not-the-key")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden")
}

func TestAuth_RejectsMissingCredentials(t *testing.T) {
	engine := authedEngine(&config.Config{AuthKey: "secret"})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_EmptyAllowlistNeverMatches(t *testing.T) {
	engine := authedEngine(&config.Config{AuthKey: "secret"})

	// With no configured frontend, an empty referer must not slip through.
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Frontend-Source", "")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestID_Propagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	// A missing inbound ID gets minted.
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestScheduleRequest_ActionDerivation(t *testing.T) {
	tests := []struct {
		name string
		req  scheduleRequest
		want models.Action
	}{
		{"explicit action wins", scheduleRequest{Action: "invoke", Passed: true}, models.ActionInvoke},
		{"passed flag maps to passed", scheduleRequest{Passed: true}, models.ActionPassed},
		{"failed status maps to failed", scheduleRequest{Status: "failed"}, models.ActionFailed},
		{"plain save is an edit", scheduleRequest{Status: "scheduled"}, models.ActionEdit},
		{"empty request is an edit", scheduleRequest{}, models.ActionEdit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.action()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := (&scheduleRequest{Action: "bogus"}).action()
	assert.Error(t, err)
}
