package handler

import (
	"context"

	"wordtrainer/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Orchestrator answers user events
type Orchestrator interface {
	Handle(ctx context.Context, e session.Event) session.Response
}

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	orchestrator Orchestrator
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, orchestrator Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{
		bot:          bot,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands. Cyrillic aliases never match telebot's command pattern and
	// arrive as text, see handleText.
	for _, command := range commands {
		h.bot.Handle("/"+command, h.handleCommand)
	}

	// Text messages, including reply keyboard answers
	h.bot.Handle(tele.OnText, h.handleText)

	// Inline buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// event builds a session event from the update sender
func event(c tele.Context, kind session.Kind, payload string) session.Event {
	e := session.Event{Kind: kind, Payload: payload}
	if sender := c.Sender(); sender != nil {
		e.UserID = sender.ID
		e.Username = sender.Username
		e.FirstName = sender.FirstName
	}
	return e
}
