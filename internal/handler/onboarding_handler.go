package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sproutly/sprout-backend/internal/ai"
	"github.com/sproutly/sprout-backend/internal/model"
	"github.com/sproutly/sprout-backend/internal/reqctx"
	"github.com/sproutly/sprout-backend/internal/service"
)

type OnboardingHandler struct {
	svc service.OnboardingService
}

func NewOnboardingHandler(svc service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

type onboardingMessageRequest struct {
	Message           string               `json:"message"`
	ConversationState ai.ConversationState `json:"conversationState"`
}

type onboardingMessageResponse struct {
	Response    string              `json:"response"`
	NextPhase   ai.Phase            `json:"nextPhase"`
	Suggestions []string            `json:"suggestions,omitempty"`
	UpdatedData ai.ConversationData `json:"updatedData"`
	Behaviors   []model.Behavior    `json:"behaviors,omitempty"`
}

func (h *OnboardingHandler) Message(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req onboardingMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "message is required"))
	}
	ctx := reqctx.WithRID(c.Request().Context(), uuid.NewString()[:8])
	resp := h.svc.Advance(ctx, req.ConversationState, req.Message)
	return c.JSON(http.StatusOK, onboardingMessageResponse{
		Response:    resp.Message,
		NextPhase:   resp.NextPhase,
		Suggestions: resp.Suggestions,
		UpdatedData: resp.Data,
		Behaviors:   resp.Behaviors,
	})
}

type onboardingCompleteRequest struct {
	OnboardingProfile model.OnboardingProfile `json:"onboardingProfile"`
	CelebrationPrefs  model.CelebrationPrefs  `json:"celebrationPrefs"`
}

func (h *OnboardingHandler) Complete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req onboardingCompleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	habits, err := h.svc.Complete(c.Request().Context(), uid, req.OnboardingProfile, req.CelebrationPrefs)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"habits":  habits,
	})
}
