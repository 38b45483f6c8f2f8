// Package conversation holds the per-user conversation state machine and its persistence.
package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Mode tags what the user is currently doing
type Mode string

const (
	ModeIdle              Mode = "idle"
	ModeQuiz              Mode = "awaiting_quiz_answer"
	ModeAddingWord        Mode = "awaiting_new_word"
	ModeAddingTranslation Mode = "awaiting_new_translation"
)

// ErrInvalidTransition is returned when an event is not allowed in the current mode
var ErrInvalidTransition = errors.New("invalid state transition")

// State is the per-user conversation state. Only the fields of the current mode are set.
type State struct {
	Mode          Mode
	Question      string
	CorrectAnswer string
	EnglishWord   string
}

// Idle returns the resting state
func Idle() State {
	return State{Mode: ModeIdle}
}

// Quiz returns the state of a pending quiz round
func Quiz(question, correctAnswer string) State {
	return State{Mode: ModeQuiz, Question: question, CorrectAnswer: correctAnswer}
}

// AddingWord returns the state awaiting an english word
func AddingWord() State {
	return State{Mode: ModeAddingWord}
}

// AddingTranslation returns the state awaiting the translation of word
func AddingTranslation(word string) State {
	return State{Mode: ModeAddingTranslation, EnglishWord: word}
}

// IsIdle reports whether nothing is pending
func (s State) IsIdle() bool {
	return s.Mode == ModeIdle || s.Mode == ""
}

// EventKind enumerates the inputs of the state machine
type EventKind int

const (
	EventStartQuiz EventKind = iota + 1
	EventAnswered
	EventStartAdd
	EventWordAccepted
	EventWordRejected
	EventTranslationSubmitted
	EventCancel
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventStartQuiz:
		return "start_quiz"
	case EventAnswered:
		return "answered"
	case EventStartAdd:
		return "start_add"
	case EventWordAccepted:
		return "word_accepted"
	case EventWordRejected:
		return "word_rejected"
	case EventTranslationSubmitted:
		return "translation_submitted"
	case EventCancel:
		return "cancel"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is an input to State.Apply
type Event struct {
	Kind          EventKind
	Question      string
	CorrectAnswer string
	Word          string
}

func StartQuiz(question, correctAnswer string) Event {
	return Event{Kind: EventStartQuiz, Question: question, CorrectAnswer: correctAnswer}
}

func Answered() Event             { return Event{Kind: EventAnswered} }
func StartAdd() Event             { return Event{Kind: EventStartAdd} }
func WordAccepted(w string) Event { return Event{Kind: EventWordAccepted, Word: w} }
func WordRejected() Event         { return Event{Kind: EventWordRejected} }
func TranslationSubmitted() Event { return Event{Kind: EventTranslationSubmitted} }
func Cancel() Event               { return Event{Kind: EventCancel} }

// Reset is issued by commands, which clear whatever was pending before running
func Reset() Event { return Event{Kind: EventReset} }

// Apply computes the state that follows s on event e
func (s State) Apply(e Event) (State, error) {
	switch e.Kind {
	case EventCancel, EventReset:
		return Idle(), nil
	}

	mode := s.Mode
	if mode == "" {
		mode = ModeIdle
	}

	switch {
	case mode == ModeIdle && e.Kind == EventStartQuiz:
		if e.CorrectAnswer == "" {
			return s, fmt.Errorf("%w: quiz without answer", ErrInvalidTransition)
		}
		return Quiz(e.Question, e.CorrectAnswer), nil
	case mode == ModeQuiz && e.Kind == EventAnswered:
		return Idle(), nil
	case mode == ModeIdle && e.Kind == EventStartAdd:
		return AddingWord(), nil
	case mode == ModeAddingWord && e.Kind == EventWordAccepted:
		if e.Word == "" {
			return s, fmt.Errorf("%w: empty word", ErrInvalidTransition)
		}
		return AddingTranslation(e.Word), nil
	case mode == ModeAddingWord && e.Kind == EventWordRejected:
		return AddingWord(), nil
	case mode == ModeAddingTranslation && e.Kind == EventTranslationSubmitted:
		return Idle(), nil
	}

	return s, fmt.Errorf("%w: %s in mode %s", ErrInvalidTransition, e.Kind, mode)
}

var cancelKeywords = []string{
	"отмена",
	"отменить",
	"cancel",
	"❌ отменить изучение",
	"❌ отмена",
}

// IsCancelKeyword reports whether text asks to abort the current operation
func IsCancelKeyword(text string) bool {
	return lo.Contains(cancelKeywords, strings.ToLower(strings.TrimSpace(text)))
}
