package handler

import (
	"time"

	"wordtrainer/internal/session"

	"github.com/samber/lo"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// sleep is replaced in tests
var sleep = time.Sleep

// buildMarkup converts message options into a telebot keyboard, nil when there is none
func buildMarkup(m session.Message) *tele.ReplyMarkup {
	columns := m.Columns
	if columns <= 0 {
		columns = 1
	}

	switch m.Keyboard {
	case session.KeyboardReply:
		markup := &tele.ReplyMarkup{ResizeKeyboard: true}
		buttons := lo.Map(m.Options, func(o session.Option, _ int) tele.Btn {
			return markup.Text(o.Label)
		})
		markup.Reply(lo.Map(lo.Chunk(buttons, columns), func(row []tele.Btn, _ int) tele.Row {
			return markup.Row(row...)
		})...)
		return markup
	case session.KeyboardInline:
		markup := &tele.ReplyMarkup{}
		buttons := lo.Map(m.Options, func(o session.Option, _ int) tele.Btn {
			return markup.Data(o.Label, o.Data)
		})
		markup.Inline(lo.Map(lo.Chunk(buttons, columns), func(row []tele.Btn, _ int) tele.Row {
			return markup.Row(row...)
		})...)
		return markup
	case session.KeyboardRemove:
		return &tele.ReplyMarkup{RemoveKeyboard: true}
	default:
		return nil
	}
}

func sendOptions(m session.Message) []interface{} {
	opts := []interface{}{tele.ModeHTML}
	if markup := buildMarkup(m); markup != nil {
		opts = append(opts, markup)
	}
	return opts
}

// render delivers the orchestrator's reply. A button press is always answered,
// with the ack text when there is one.
func (h *Handler) render(c tele.Context, resp session.Response) error {
	var userID int64
	if sender := c.Sender(); sender != nil {
		userID = sender.ID
	}

	var sendErr error
	for _, m := range resp.Messages {
		if m.Delay > 0 {
			sleep(m.Delay)
		}

		if m.Edit && c.Callback() != nil {
			err := c.Edit(m.Text, sendOptions(m)...)
			if err = h.handleEditError(err, c, userID); err == nil {
				continue
			}
			// Edit failed, fall back to a new message
		}

		if err := c.Send(m.Text, sendOptions(m)...); err != nil {
			h.logger.Error("Failed to send message",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			sendErr = err
			break
		}
	}

	if c.Callback() != nil {
		if err := c.Respond(&tele.CallbackResponse{Text: resp.Ack}); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return sendErr
}
