package handler

import (
	"strings"
	"unicode"

	"wordtrainer/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit(). A "message is not modified" error
// means another press already edited it and is swallowed; any other error is returned
// so the caller can send a new message.
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Inline buttons built with markup.Data arrive as "\f<data>"
	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", c.Sender().ID),
	)

	return h.dispatch(c, event(c, session.KindButtonPress, data))
}
