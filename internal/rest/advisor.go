package rest

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"edusign/internal/history"
)

type AdvisorService interface {
	Ask(ctx context.Context, text string) (history.Entry, bool)
	Transcript() []history.Entry
	Loading() bool
}

type AdvisorHandler struct {
	advisor   AdvisorService
	validator *validator.Validate
}

func NewAdvisorHandler(advisor AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		advisor:   advisor,
		validator: validator.New(),
	}
}

type AskRequest struct {
	Message string `json:"message" validate:"required"`
}

type transcriptResponse struct {
	Reply      *history.Entry  `json:"reply,omitempty"`
	Loading    bool            `json:"loading"`
	Transcript []history.Entry `json:"transcript"`
}

// Ask blocks until the completion settles. The request context is detached
// from cancellation: a client hanging up does not abort the in-flight ask.
func (h *AdvisorHandler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "message is required"})
	}

	reply, ok := h.advisor.Ask(context.WithoutCancel(c.Request().Context()), req.Message)
	if !ok {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "message is required"})
	}
	return c.JSON(http.StatusOK, transcriptResponse{
		Reply:      &reply,
		Loading:    h.advisor.Loading(),
		Transcript: h.advisor.Transcript(),
	})
}

func (h *AdvisorHandler) GetTranscript(c echo.Context) error {
	return c.JSON(http.StatusOK, transcriptResponse{
		Loading:    h.advisor.Loading(),
		Transcript: h.advisor.Transcript(),
	})
}
