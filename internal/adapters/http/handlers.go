package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/consult"
	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
	"github.com/forexorbit/academy-calls/internal/token"
)

// TokenController issues channel join tokens. The caller is identified
// by the client token cookie and must name an active consultation it is
// a party of; the channel name comes from the consultation, not the
// request, so clients cannot mint tokens for arbitrary channels.
type TokenController struct {
	Tokens   *token.Issuer
	Consults *consult.Service
	AppID    string
}

type tokenRequest struct {
	ConsultationID string `json:"consultation_id" binding:"required"`
}

func (tc *TokenController) Issue(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cons, err := tc.Consults.Get(c.Request.Context(), req.ConsultationID)
	if err != nil {
		writeConsultError(c, err)
		return
	}
	if cons.Status != domain.ConsultationActive {
		c.JSON(http.StatusConflict, gin.H{"error": "consultation is not active"})
		return
	}

	uid := domain.UserID(c.GetString("client_token"))
	var role domain.Role
	switch uid {
	case cons.StudentID:
		role = domain.RoleStudent
	case cons.ExpertID:
		role = domain.RoleExpert
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party of this consultation"})
		return
	}

	tok, err := tc.Tokens.Issue(cons.Channel, uid, role)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("token issue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   tok,
		"app_id":  tc.AppID,
		"channel": cons.Channel,
		"uid":     uid,
		"role":    role,
	})
}

// ChannelsController exposes the live call channels for operators.
type ChannelsController struct {
	Channels core.ChannelManager
}

func (ch *ChannelsController) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"channels": ch.Channels.List()})
}

type ConsultationsController struct {
	Svc *consult.Service
}

type consultationRequest struct {
	ExpertID string `json:"expert_id" binding:"required"`
	Topic    string `json:"topic" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
}

func (cc *ConsultationsController) Request(c *gin.Context) {
	var req consultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	studentID := domain.UserID(c.GetString("client_token"))
	cons, err := cc.Svc.Request(c.Request.Context(), studentID, domain.UserID(req.ExpertID), req.Topic, domain.CallKind(req.Kind))
	if err != nil {
		writeConsultError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cons)
}

func (cc *ConsultationsController) List(c *gin.Context) {
	status := domain.ConsultationStatus(c.Query("status"))
	list, err := cc.Svc.List(c.Request.Context(), status)
	if err != nil {
		writeConsultError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": list})
}

func (cc *ConsultationsController) Get(c *gin.Context) {
	cons, err := cc.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeConsultError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

func (cc *ConsultationsController) Accept(c *gin.Context) {
	cons, err := cc.Svc.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeConsultError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

func (cc *ConsultationsController) Complete(c *gin.Context) {
	cons, err := cc.Svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeConsultError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

func (cc *ConsultationsController) Reject(c *gin.Context) {
	cons, err := cc.Svc.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeConsultError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

func writeConsultError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, consult.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "consultation not found"})
	case errors.Is(err, consult.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, consult.ErrInvalidKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("consultation handler")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
