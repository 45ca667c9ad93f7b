package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/adapters/signal"
	"github.com/forexorbit/academy-calls/internal/config"
	"github.com/forexorbit/academy-calls/internal/consult"
	"github.com/forexorbit/academy-calls/internal/token"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, signalCtrl *signal.SignalWSController, consults *consult.Service, tokens *token.Issuer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("CallSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/ws/signal", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws signal endpoint hit")
		signalCtrl.HandleSignal(ctx, c)
	})

	tc := &TokenController{Tokens: tokens, Consults: consults, AppID: cfg.AppID}
	api.POST("/token", tc.Issue)

	chc := &ChannelsController{Channels: signalCtrl.Orch.Channels}
	api.GET("/channels", chc.List)

	cc := &ConsultationsController{Svc: consults}
	api.POST("/consultations", cc.Request)
	api.GET("/consultations", cc.List)
	api.GET("/consultations/:id", cc.Get)
	api.POST("/consultations/:id/accept", cc.Accept)
	api.POST("/consultations/:id/complete", cc.Complete)
	api.POST("/consultations/:id/reject", cc.Reject)

	return r
}
