package domain

// OptionsPerQuestion is the number of answer options shown in a quiz round
const OptionsPerQuestion = 4

// Question is a single quiz round: the translation is shown, the english form is expected
type Question struct {
	Prompt        string
	CorrectAnswer string
	Options       []string
}
