package handler

import (
	"context"

	"wordtrainer/internal/session"

	tele "gopkg.in/telebot.v3"
)

// handleText handles text messages. Slash commands that telebot did not route
// (aliases, unknown commands) are turned into command events.
func (h *Handler) handleText(c tele.Context) error {
	if command, ok := resolveCommand(c.Text()); ok {
		return h.dispatch(c, event(c, session.KindCommand, command))
	}
	return h.dispatch(c, event(c, session.KindText, c.Text()))
}

// dispatch hands the event to the orchestrator and renders its reply
func (h *Handler) dispatch(c tele.Context, e session.Event) error {
	resp := h.orchestrator.Handle(context.Background(), e)
	return h.render(c, resp)
}
