package session

import (
	"fmt"
	"html"
	"unicode/utf8"

	"wordtrainer/internal/domain"

	"github.com/samber/lo"
)

const (
	msgWelcome = `🎓 <b>Привет! Я бот для изучения английских слов!</b>

<b>Доступные команды:</b>
/start - Начать работу с ботом
/study - 🎯 Начать изучение слов
/add_word - ➕ Добавить новое слово
/delete_word - 🗑️ Удалить слово из списка
/stats - 📊 Показать статистику

<b>Просто выбери команду из меню или введи ее вручную!</b>`

	msgEmptyVocabulary = "📭 <b>Ваш словарь пуст!</b>\nДобавьте слова с помощью /add_word"
	msgEmptyDeleteList = "📭 <b>Ваш словарь пуст.</b>"
	msgUnknownInput    = "🤔 <b>Не понимаю команду</b>\nИспользуйте /start для просмотра доступных команд"
	msgUnknownCommand  = "🤔 <b>Неизвестная команда</b>\nИспользуйте /start для просмотра доступных команд"
	msgCancelled       = "✅ <b>Операция отменена</b>\nВыберите новую команду:"
	msgCorrect         = "✅ <b>Правильно! Отлично!</b> 🎉"
	msgAskWord         = "📝 <b>Введите слово на английском:</b>\n<i>Или нажмите '❌ Отмена' для отмены</i>"
	msgBadWord         = "❌ <b>Слово должно содержать только буквы!</b>\nПопробуйте еще раз:"
	msgEmptyTranslate  = "❌ <b>Перевод не может быть пустым.</b>\nНачните заново с /add_word"
	msgChooseDelete    = "🗑️ <b>Выберите слово для удаления:</b>"
	msgDeleted         = "✅ <b>Слово удалено.</b>\nНажмите /delete_word для управления другими словами."
	msgStorageError    = "Произошла ошибка. Попробуйте позже."

	ackDeleted       = "✅ Слово удалено!"
	ackDeleteFailed  = "❌ Не удалось удалить слово."
	ackUnknownButton = "❓ Неизвестная команда"

	cancelStudyLabel = "❌ Отменить изучение"
	cancelLabel      = "❌ Отмена"

	deleteTokenPrefix = "delete_"

	maxButtonLabel  = 40
	shortTranslated = 15
)

func msgWrong(correctAnswer string) string {
	return fmt.Sprintf("❌ <b>Неправильно.</b> Правильный ответ: <code>%s</code>", html.EscapeString(correctAnswer))
}

func msgAskTranslation(word string) string {
	return fmt.Sprintf("🌍 <b>Отлично! Слово:</b> <code>%s</code>\n<b>Теперь введите перевод на русский:</b>", html.EscapeString(word))
}

func msgWordAdded(word string) string {
	return fmt.Sprintf("✅ <b>Слово '%s' успешно добавлено!</b>", html.EscapeString(word))
}

func msgWordCount(count int) string {
	return fmt.Sprintf("📊 <b>Теперь вы изучаете %d слов.</b>", count)
}

func msgStats(count int) string {
	return fmt.Sprintf("📊 <b>Вы изучаете %d слов.</b>\nНачните изучение: /study", count)
}

func questionMessage(q *domain.Question) Message {
	options := lo.Map(q.Options, func(option string, _ int) Option {
		return Option{Label: option, Data: option}
	})
	options = append(options, Option{Label: cancelStudyLabel, Data: cancelStudyLabel})

	return Message{
		Text:     fmt.Sprintf("<b>Как переводится слово</b> 🔤 <code>%s</code>?", html.EscapeString(q.Prompt)),
		Keyboard: KeyboardReply,
		Options:  options,
		Columns:  2,
	}
}

func mainMenu(text string) Message {
	return Message{
		Text:     text,
		Keyboard: KeyboardReply,
		Options: []Option{
			{Label: "/study", Data: "/study"},
			{Label: "/add_word", Data: "/add_word"},
			{Label: "/stats", Data: "/stats"},
			{Label: "/delete_word", Data: "/delete_word"},
		},
		Columns: 2,
	}
}

func deleteList(words []domain.Word) Message {
	return Message{
		Text:     msgChooseDelete,
		Keyboard: KeyboardInline,
		Options: lo.Map(words, func(w domain.Word, _ int) Option {
			return Option{Label: deleteLabel(w), Data: fmt.Sprintf("%s%d", deleteTokenPrefix, w.ID)}
		}),
	}
}

// deleteLabel shortens the translation when the whole label would not fit a button
func deleteLabel(w domain.Word) string {
	label := fmt.Sprintf("❌ %s - %s", w.English, w.Translation)
	if utf8.RuneCountInString(label) <= maxButtonLabel {
		return label
	}
	translation := []rune(w.Translation)
	if len(translation) > shortTranslated {
		translation = translation[:shortTranslated]
	}
	return fmt.Sprintf("❌ %s - %s...", w.English, string(translation))
}
