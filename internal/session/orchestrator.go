package session

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"wordtrainer/internal/conversation"
	"wordtrainer/internal/domain"

	"go.uber.org/zap"
)

// Vocabulary is the word store as seen by the orchestrator
type Vocabulary interface {
	RegisterUser(ctx context.Context, userID int64, username, firstName string) (bool, error)
	ListWords(ctx context.Context, userID int64) ([]domain.Word, error)
	AddWord(ctx context.Context, userID int64, english, translation string) (string, error)
	DeleteWord(ctx context.Context, userID, wordID int64) error
	WordCount(ctx context.Context, userID int64) (int, error)
}

// QuestionSelector picks the next quiz question, nil when the user has no words
type QuestionSelector interface {
	SelectQuestion(ctx context.Context, userID int64) (*domain.Question, error)
}

// Orchestrator drives one conversation turn: load state, act, persist state, reply
type Orchestrator struct {
	vocabulary Vocabulary
	quiz       QuestionSelector
	states     *conversation.Store
	locker     *conversation.Locker
	studyDelay time.Duration
	logger     *zap.Logger
}

// NewOrchestrator creates a new session orchestrator
func NewOrchestrator(
	vocabulary Vocabulary,
	quiz QuestionSelector,
	states *conversation.Store,
	locker *conversation.Locker,
	studyDelay time.Duration,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		vocabulary: vocabulary,
		quiz:       quiz,
		states:     states,
		locker:     locker,
		studyDelay: studyDelay,
		logger:     logger,
	}
}

// Handle processes one event. It never fails: every error is turned into a reply.
// Events of the same user are handled one at a time.
func (o *Orchestrator) Handle(ctx context.Context, e Event) Response {
	unlock := o.locker.Lock(e.UserID)
	defer unlock()

	switch e.Kind {
	case KindCommand:
		return o.handleCommand(ctx, e)
	case KindText:
		return o.handleText(ctx, e)
	case KindButtonPress:
		return o.handleButton(ctx, e)
	default:
		o.logger.Warn("Unknown event kind", zap.Int64("user_id", e.UserID), zap.Int("kind", int(e.Kind)))
		return Response{}
	}
}

// transition applies ev to current and persists the result. On failure the
// stored state is left as it was and current is returned.
func (o *Orchestrator) transition(ctx context.Context, userID int64, current conversation.State, ev conversation.Event) (conversation.State, error) {
	next, err := current.Apply(ev)
	if err != nil {
		return current, err
	}
	if err := o.states.Save(ctx, userID, next); err != nil {
		return current, err
	}
	return next, nil
}

func (o *Orchestrator) loadState(ctx context.Context, userID int64) (conversation.State, error) {
	state, err := o.states.Load(ctx, userID)
	if errors.Is(err, conversation.ErrCorruptState) {
		o.logger.Warn("Corrupt conversation state, treating as idle",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return conversation.Idle(), nil
	}
	return state, err
}

func (o *Orchestrator) storageError(userID int64, action string, err error) Response {
	o.logger.Error("Failed to "+action,
		zap.Int64("user_id", userID),
		zap.Error(err),
	)
	return reply(text(msgStorageError))
}

func (o *Orchestrator) handleCommand(ctx context.Context, e Event) Response {
	command := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e.Payload), "/"))

	switch command {
	case CommandStart, CommandStudy, CommandAddWord, CommandDeleteWord, CommandStats:
	default:
		o.logger.Debug("Unknown command", zap.Int64("user_id", e.UserID), zap.String("command", command))
		return reply(text(msgUnknownCommand))
	}

	if command == CommandStart {
		created, err := o.vocabulary.RegisterUser(ctx, e.UserID, e.Username, e.FirstName)
		if err != nil {
			return o.storageError(e.UserID, "register user", err)
		}
		o.logger.Info("User started bot",
			zap.Int64("user_id", e.UserID),
			zap.String("username", e.Username),
			zap.Bool("new_user", created),
		)
	}

	// Commands abandon whatever was pending
	state, err := o.transition(ctx, e.UserID, conversation.Idle(), conversation.Reset())
	if err != nil {
		return o.storageError(e.UserID, "reset state", err)
	}

	switch command {
	case CommandStart:
		return reply(text(msgWelcome))
	case CommandStudy:
		return o.startQuiz(ctx, e.UserID, state)
	case CommandAddWord:
		return o.startAddWord(ctx, e.UserID, state)
	case CommandDeleteWord:
		return o.listForDeletion(ctx, e.UserID)
	default:
		return o.showStats(ctx, e.UserID)
	}
}

// nextQuestion picks a question and enters the quiz. A nil message means the
// vocabulary is empty and the state stays as it was.
func (o *Orchestrator) nextQuestion(ctx context.Context, userID int64, state conversation.State) (*Message, error) {
	q, err := o.quiz.SelectQuestion(ctx, userID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, nil
	}
	if _, err := o.transition(ctx, userID, state, conversation.StartQuiz(q.Prompt, q.CorrectAnswer)); err != nil {
		return nil, err
	}
	msg := questionMessage(q)
	return &msg, nil
}

func (o *Orchestrator) startQuiz(ctx context.Context, userID int64, state conversation.State) Response {
	msg, err := o.nextQuestion(ctx, userID, state)
	if err != nil {
		return o.storageError(userID, "start quiz", err)
	}
	if msg == nil {
		return reply(text(msgEmptyVocabulary))
	}
	return reply(*msg)
}

func (o *Orchestrator) startAddWord(ctx context.Context, userID int64, state conversation.State) Response {
	if _, err := o.transition(ctx, userID, state, conversation.StartAdd()); err != nil {
		return o.storageError(userID, "start adding word", err)
	}
	return reply(Message{
		Text:     msgAskWord,
		Keyboard: KeyboardReply,
		Options:  []Option{{Label: cancelLabel, Data: cancelLabel}},
	})
}

func (o *Orchestrator) listForDeletion(ctx context.Context, userID int64) Response {
	words, err := o.vocabulary.ListWords(ctx, userID)
	if err != nil {
		return o.storageError(userID, "list words", err)
	}
	if len(words) == 0 {
		return reply(text(msgEmptyDeleteList))
	}
	return reply(deleteList(words))
}

func (o *Orchestrator) showStats(ctx context.Context, userID int64) Response {
	count, err := o.vocabulary.WordCount(ctx, userID)
	if err != nil {
		return o.storageError(userID, "count words", err)
	}
	if count == 0 {
		return reply(text(msgEmptyVocabulary))
	}
	return reply(text(msgStats(count)))
}

func (o *Orchestrator) handleText(ctx context.Context, e Event) Response {
	state, err := o.loadState(ctx, e.UserID)
	if err != nil {
		return o.storageError(e.UserID, "load state", err)
	}

	if conversation.IsCancelKeyword(e.Payload) {
		if _, err := o.transition(ctx, e.UserID, state, conversation.Cancel()); err != nil {
			return o.storageError(e.UserID, "cancel", err)
		}
		return reply(mainMenu(msgCancelled))
	}

	switch state.Mode {
	case conversation.ModeQuiz:
		return o.gradeAnswer(ctx, e, state)
	case conversation.ModeAddingWord:
		return o.acceptWord(ctx, e, state)
	case conversation.ModeAddingTranslation:
		return o.acceptTranslation(ctx, e, state)
	default:
		return reply(text(msgUnknownInput))
	}
}

func (o *Orchestrator) gradeAnswer(ctx context.Context, e Event, state conversation.State) Response {
	correct := e.Payload == state.CorrectAnswer

	idle, err := o.transition(ctx, e.UserID, state, conversation.Answered())
	if err != nil {
		return o.storageError(e.UserID, "save answer", err)
	}

	o.logger.Debug("Quiz answered",
		zap.Int64("user_id", e.UserID),
		zap.Bool("correct", correct),
	)

	verdict := text(msgCorrect)
	if !correct {
		verdict = text(msgWrong(state.CorrectAnswer))
	}

	next, err := o.nextQuestion(ctx, e.UserID, idle)
	if err != nil {
		o.logger.Error("Failed to select next question", zap.Int64("user_id", e.UserID), zap.Error(err))
		followUp := text(msgStorageError)
		followUp.Delay = o.studyDelay
		return reply(verdict, followUp)
	}
	if next == nil {
		followUp := text(msgEmptyVocabulary)
		followUp.Delay = o.studyDelay
		return reply(verdict, followUp)
	}
	next.Delay = o.studyDelay
	return reply(verdict, *next)
}

func (o *Orchestrator) acceptWord(ctx context.Context, e Event, state conversation.State) Response {
	word, err := domain.NormalizeEnglish(e.Payload)
	if err != nil {
		if _, err := o.transition(ctx, e.UserID, state, conversation.WordRejected()); err != nil {
			return o.storageError(e.UserID, "save state", err)
		}
		return reply(text(msgBadWord))
	}

	if _, err := o.transition(ctx, e.UserID, state, conversation.WordAccepted(word)); err != nil {
		return o.storageError(e.UserID, "save state", err)
	}
	return reply(text(msgAskTranslation(word)))
}

func (o *Orchestrator) acceptTranslation(ctx context.Context, e Event, state conversation.State) Response {
	word, err := o.vocabulary.AddWord(ctx, e.UserID, state.EnglishWord, e.Payload)
	if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
		return o.storageError(e.UserID, "add word", err)
	}
	invalid := err != nil

	if _, err := o.transition(ctx, e.UserID, state, conversation.TranslationSubmitted()); err != nil {
		return o.storageError(e.UserID, "save state", err)
	}

	if invalid {
		return reply(mainMenu(msgEmptyTranslate))
	}

	o.logger.Info("Word added",
		zap.Int64("user_id", e.UserID),
		zap.String("word", word),
	)

	count, err := o.vocabulary.WordCount(ctx, e.UserID)
	if err != nil {
		o.logger.Warn("Failed to count words", zap.Int64("user_id", e.UserID), zap.Error(err))
		return reply(mainMenu(msgWordAdded(word)))
	}
	return reply(mainMenu(msgWordAdded(word) + "\n" + msgWordCount(count)))
}

// parseDeleteToken extracts the word id from a "delete_<id>" token
func parseDeleteToken(token string) (int64, bool, error) {
	rest, found := strings.CutPrefix(token, deleteTokenPrefix)
	if !found {
		return 0, false, nil
	}
	wordID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || wordID <= 0 {
		return 0, true, domain.ErrInvalidInput
	}
	return wordID, true, nil
}

func (o *Orchestrator) handleButton(ctx context.Context, e Event) Response {
	wordID, isDelete, err := parseDeleteToken(e.Payload)
	if !isDelete {
		o.logger.Warn("Unknown button", zap.Int64("user_id", e.UserID), zap.String("data", e.Payload))
		return Response{Ack: ackUnknownButton}
	}
	if err != nil {
		o.logger.Warn("Malformed delete token", zap.Int64("user_id", e.UserID), zap.String("data", e.Payload))
		return Response{Ack: ackDeleteFailed}
	}

	if err := o.vocabulary.DeleteWord(ctx, e.UserID, wordID); err != nil {
		o.logger.Error("Failed to delete word",
			zap.Int64("user_id", e.UserID),
			zap.Int64("word_id", wordID),
			zap.Error(err),
		)
		return Response{Ack: ackDeleteFailed}
	}

	o.logger.Info("Word deleted", zap.Int64("user_id", e.UserID), zap.Int64("word_id", wordID))
	return Response{
		Messages: []Message{{Text: msgDeleted, Edit: true}},
		Ack:      ackDeleted,
	}
}
