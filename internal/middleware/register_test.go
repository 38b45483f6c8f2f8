package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) RegisterUser(ctx context.Context, userID int64, username, firstName string) (bool, error) {
	args := m.Called(userID, username, firstName)
	return args.Bool(0), args.Error(1)
}

type fakeContext struct {
	tele.Context

	sender   *tele.User
	callback *tele.Callback
	sent     []string
	acks     []string
}

func (c *fakeContext) Sender() *tele.User       { return c.sender }
func (c *fakeContext) Callback() *tele.Callback { return c.callback }

func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what.(string))
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	for _, r := range resp {
		c.acks = append(c.acks, r.Text)
	}
	return nil
}

func TestRegisterMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		created     bool
		mockError   error
		callback    bool
		expectNext  bool
		expectSent  int
		expectAcked int
	}{
		{
			name:       "new user",
			created:    true,
			expectNext: true,
		},
		{
			name:       "known user",
			created:    false,
			expectNext: true,
		},
		{
			name:       "storage error on message",
			mockError:  errors.New("db error"),
			expectSent: 1,
		},
		{
			name:        "storage error on button",
			mockError:   errors.New("db error"),
			callback:    true,
			expectAcked: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registrar := new(mockRegistrar)
			registrar.On("RegisterUser", int64(1), "alice", "Alice").Return(tt.created, tt.mockError)

			c := &fakeContext{sender: &tele.User{ID: 1, Username: "alice", FirstName: "Alice"}}
			if tt.callback {
				c.callback = &tele.Callback{ID: "cb"}
			}

			called := false
			handler := RegisterMiddleware(registrar, zap.NewNop())(func(c tele.Context) error {
				called = true
				return nil
			})

			err := handler(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectNext, called)
			assert.Len(t, c.sent, tt.expectSent)
			assert.Len(t, c.acks, tt.expectAcked)
			registrar.AssertExpectations(t)
		})
	}
}

func TestRegisterMiddleware_NoSender(t *testing.T) {
	registrar := new(mockRegistrar)
	called := false
	handler := RegisterMiddleware(registrar, zap.NewNop())(func(c tele.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, handler(&fakeContext{}))
	assert.True(t, called)
	registrar.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything, mock.Anything)
}
