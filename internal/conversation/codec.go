package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const codecVersion = 1

// ErrCorruptState is returned when a stored blob cannot be decoded into a State
var ErrCorruptState = errors.New("corrupt conversation state")

// Modes written by the first, unversioned layout
const (
	legacyModeStudy        = "study"
	legacyModeAddWordStep1 = "add_word_step1"
	legacyModeAddWordStep2 = "add_word_step2"
)

type stateBlob struct {
	Version       int    `json:"v,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Question      string `json:"question,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	EnglishWord   string `json:"english_word,omitempty"`
}

// Encode serializes s into the blob stored alongside the user.
// The idle state is stored as the empty blob.
func Encode(s State) (string, error) {
	if s.IsIdle() {
		return "", nil
	}
	if err := validate(s); err != nil {
		return "", err
	}

	data, err := json.Marshal(stateBlob{
		Version:       codecVersion,
		Mode:          string(s.Mode),
		Question:      s.Question,
		CorrectAnswer: s.CorrectAnswer,
		EnglishWord:   s.EnglishWord,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode state: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored blob. An empty blob is the idle state.
func Decode(data string) (State, error) {
	if strings.TrimSpace(data) == "" {
		return Idle(), nil
	}

	var b stateBlob
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return Idle(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	var s State
	switch b.Version {
	case 0:
		s = decodeLegacy(b)
	case codecVersion:
		s = State{
			Mode:          Mode(b.Mode),
			Question:      b.Question,
			CorrectAnswer: b.CorrectAnswer,
			EnglishWord:   b.EnglishWord,
		}
	default:
		return Idle(), fmt.Errorf("%w: unsupported version %d", ErrCorruptState, b.Version)
	}

	if err := validate(s); err != nil {
		return Idle(), err
	}
	return s, nil
}

func decodeLegacy(b stateBlob) State {
	switch b.Mode {
	case "":
		return Idle()
	case legacyModeStudy:
		return Quiz(b.Question, b.CorrectAnswer)
	case legacyModeAddWordStep1:
		return AddingWord()
	case legacyModeAddWordStep2:
		return AddingTranslation(b.EnglishWord)
	default:
		return State{Mode: Mode(b.Mode)}
	}
}

func validate(s State) error {
	switch s.Mode {
	case ModeIdle, ModeAddingWord:
		return nil
	case ModeQuiz:
		if s.CorrectAnswer == "" {
			return fmt.Errorf("%w: quiz without answer", ErrCorruptState)
		}
		return nil
	case ModeAddingTranslation:
		if s.EnglishWord == "" {
			return fmt.Errorf("%w: missing pending word", ErrCorruptState)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrCorruptState, s.Mode)
	}
}
