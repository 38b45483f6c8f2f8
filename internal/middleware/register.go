package middleware

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Registrar creates users on first contact and refreshes their profile
type Registrar interface {
	RegisterUser(ctx context.Context, userID int64, username, firstName string) (bool, error)
}

// RegisterMiddleware makes sure the sender exists before any handler runs
func RegisterMiddleware(registrar Registrar, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			created, err := registrar.RegisterUser(context.Background(), sender.ID, sender.Username, sender.FirstName)
			if err != nil {
				logger.Error("Failed to register user in middleware",
					zap.Int64("user_id", sender.ID),
					zap.Error(err),
				)
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Произошла ошибка. Попробуйте позже."})
				}
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}

			if created {
				logger.Info("New user registered",
					zap.Int64("user_id", sender.ID),
					zap.String("username", sender.Username),
				)
			}

			return next(c)
		}
	}
}
