package handler

import (
	"strings"

	"wordtrainer/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var commands = []string{
	session.CommandStart,
	session.CommandStudy,
	session.CommandAddWord,
	session.CommandDeleteWord,
	session.CommandStats,
}

var commandAliases = map[string]string{
	"начать":       session.CommandStart,
	"учить":        session.CommandStudy,
	"обучение":     session.CommandStudy,
	"добавить":     session.CommandAddWord,
	"новоеслово":   session.CommandAddWord,
	"удалить":      session.CommandDeleteWord,
	"удалитьслово": session.CommandDeleteWord,
	"статистика":   session.CommandStats,
	"слова":        session.CommandStats,
}

// resolveCommand maps "/name", "/name@bot" or an alias to a command name.
// Reports false when text is not a command at all.
func resolveCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	name := strings.Fields(text[1:])
	if len(name) == 0 {
		return "", false
	}
	command, _, _ := strings.Cut(strings.ToLower(name[0]), "@")

	if canonical, ok := commandAliases[command]; ok {
		return canonical, true
	}
	return command, true
}

// handleCommand handles every registered /command
func (h *Handler) handleCommand(c tele.Context) error {
	command, _ := resolveCommand(c.Text())

	h.logger.Debug("Command received",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("command", command),
	)

	return h.dispatch(c, event(c, session.KindCommand, command))
}
