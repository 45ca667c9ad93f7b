package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/forexorbit/academy-calls/internal/app"
	"github.com/forexorbit/academy-calls/internal/app/orch"
	"github.com/forexorbit/academy-calls/internal/app/sfu"
	"github.com/forexorbit/academy-calls/internal/consult"
	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
	"github.com/forexorbit/academy-calls/internal/token"
)

type testEnv struct {
	router *gin.Engine
	svc    *consult.Service
	tokens *token.Issuer
	caller string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	channels := app.NewChannelManager()
	o := &orch.Orchestrator{
		Registry: app.NewRegistry(),
		Channels: channels,
		Relays:   sfu.NewRelayManager(),
	}
	env := &testEnv{
		svc:    consult.NewService(consult.NewInMemRepository(), channels, o),
		tokens: token.NewIssuer("test-secret", time.Hour),
		caller: "student-1",
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("client_token", env.caller)
		c.Next()
	})

	tc := &TokenController{Tokens: env.tokens, Consults: env.svc}
	cc := &ConsultationsController{Svc: env.svc}
	chc := &ChannelsController{Channels: channels}
	api := r.Group("/api")
	api.POST("/token", tc.Issue)
	api.GET("/channels", chc.List)
	api.POST("/consultations", cc.Request)
	api.GET("/consultations", cc.List)
	api.GET("/consultations/:id", cc.Get)
	api.POST("/consultations/:id/accept", cc.Accept)
	api.POST("/consultations/:id/complete", cc.Complete)
	api.POST("/consultations/:id/reject", cc.Reject)

	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func requestConsultation(t *testing.T, env *testEnv) domain.Consultation {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/consultations", `{"expert_id":"expert-1","topic":"scalping","kind":"voice"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var c domain.Consultation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	return c
}

func TestConsultationFlow(t *testing.T) {
	env := newTestEnv(t)

	c := requestConsultation(t, env)
	require.Equal(t, domain.ConsultationPending, c.Status)
	require.Equal(t, domain.UserID("student-1"), c.StudentID)

	w := env.do(t, http.MethodPost, "/api/consultations/"+c.ID+"/accept", "")
	require.Equal(t, http.StatusOK, w.Code)
	var accepted domain.Consultation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.Equal(t, domain.ConsultationActive, accepted.Status)
	require.NotEmpty(t, accepted.Channel)

	w = env.do(t, http.MethodPost, "/api/consultations/"+c.ID+"/complete", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Completed consultations cannot be accepted again.
	w = env.do(t, http.MethodPost, "/api/consultations/"+c.ID+"/accept", "")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestConsultationValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/consultations", `{"topic":"x"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/consultations", `{"expert_id":"e","topic":"x","kind":"hologram"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/consultations/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTokenRequiresActiveConsultation(t *testing.T) {
	env := newTestEnv(t)
	c := requestConsultation(t, env)

	w := env.do(t, http.MethodPost, "/api/token", `{"consultation_id":"`+c.ID+`"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/consultations/"+c.ID+"/accept", "").Code)

	w = env.do(t, http.MethodPost, "/api/token", `{"consultation_id":"`+c.ID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token   string             `json:"token"`
		Channel domain.ChannelName `json:"channel"`
		Role    domain.Role        `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, domain.RoleStudent, resp.Role)

	claims, err := env.tokens.Verify(resp.Token, resp.Channel)
	require.NoError(t, err)
	require.Equal(t, "student-1", claims.Subject)
}

func TestTokenRejectsStrangers(t *testing.T) {
	env := newTestEnv(t)
	c := requestConsultation(t, env)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/consultations/"+c.ID+"/accept", "").Code)

	env.caller = "eve"
	w := env.do(t, http.MethodPost, "/api/token", `{"consultation_id":"`+c.ID+`"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestChannelsListTracksCallLifecycle(t *testing.T) {
	env := newTestEnv(t)
	c := requestConsultation(t, env)

	listChannels := func() []core.ChannelInfo {
		w := env.do(t, http.MethodGet, "/api/channels", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Channels []core.ChannelInfo `json:"channels"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Channels
	}

	require.Empty(t, listChannels())

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/consultations/"+c.ID+"/accept", "").Code)
	require.Len(t, listChannels(), 1)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/consultations/"+c.ID+"/complete", "").Code)
	require.Empty(t, listChannels())
}

func TestListFilters(t *testing.T) {
	env := newTestEnv(t)
	a := requestConsultation(t, env)
	requestConsultation(t, env)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/consultations/"+a.ID+"/accept", "").Code)

	w := env.do(t, http.MethodGet, "/api/consultations?status=pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Consultations []domain.Consultation `json:"consultations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Consultations, 1)
}
