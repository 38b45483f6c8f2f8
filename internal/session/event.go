// Package session turns user events into state transitions and reply payloads.
// It knows nothing about the chat platform; the transport renders its responses.
package session

import "time"

// Kind tells what the user did
type Kind int

const (
	KindCommand Kind = iota + 1
	KindText
	KindButtonPress
)

// Commands understood by the orchestrator. Aliases are resolved by the transport.
const (
	CommandStart      = "start"
	CommandStudy      = "study"
	CommandAddWord    = "add_word"
	CommandDeleteWord = "delete_word"
	CommandStats      = "stats"
)

// Event is one inbound user action. For commands Payload is the command name
// without the leading slash, for buttons it is the button token.
type Event struct {
	UserID    int64
	Username  string
	FirstName string
	Kind      Kind
	Payload   string
}

// Keyboard selects how the options of a message are shown
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardReply
	KeyboardInline
	KeyboardRemove
)

// Option is one button. Reply buttons send Label back as text, inline buttons send Data.
type Option struct {
	Label string
	Data  string
}

// Message is one outbound message with HTML text
type Message struct {
	Text     string
	Keyboard Keyboard
	Options  []Option
	// Columns is the number of buttons per row, 0 means one
	Columns int
	// Edit replaces the message the button was attached to instead of sending a new one
	Edit bool
	// Delay is waited before sending
	Delay time.Duration
}

// Response is everything produced for one event
type Response struct {
	Messages []Message
	// Ack is the short notice answering a button press
	Ack string
}

func reply(messages ...Message) Response {
	return Response{Messages: messages}
}

func text(s string) Message {
	return Message{Text: s}
}
