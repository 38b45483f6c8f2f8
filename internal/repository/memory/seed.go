package memory

import "wordtrainer/internal/domain"

// SeedWords mirrors the seed migration so both backends start from the same vocabulary
var SeedWords = []domain.Word{
	{English: "red", Translation: "красный"},
	{English: "blue", Translation: "синий"},
	{English: "green", Translation: "зелёный"},
	{English: "yellow", Translation: "жёлтый"},
	{English: "white", Translation: "белый"},
	{English: "black", Translation: "чёрный"},
	{English: "car", Translation: "машина"},
	{English: "house", Translation: "дом"},
	{English: "peace", Translation: "мир"},
	{English: "water", Translation: "вода"},
	{English: "sun", Translation: "солнце"},
	{English: "book", Translation: "книга"},
	{English: "friend", Translation: "друг"},
	{English: "city", Translation: "город"},
	{English: "tree", Translation: "дерево"},
	{English: "i", Translation: "я"},
	{English: "you", Translation: "ты"},
	{English: "he", Translation: "он"},
	{English: "she", Translation: "она"},
	{English: "it", Translation: "оно"},
	{English: "we", Translation: "мы"},
	{English: "they", Translation: "они"},
}
