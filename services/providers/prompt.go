package providers

import "strings"

// basePrompt sets the assistant persona shared by all providers and
// response types.
const basePrompt = `Ты - эксперт по функциям DataLens (система бизнес-аналитики от Яндекса).
Отвечай на вопросы о формулах и функциях DataLens на русском языке.`

// detailedInstructions request a structured answer with syntax and an
// example.
const detailedInstructions = `Формат ответа:
1. Название подходящей функции
2. Синтаксис функции
3. Краткое описание
4. Пример использования

Если вопрос не относится к функциям DataLens, вежливо сообщи об этом.`

// shortInstructions request only the function syntax.
const shortInstructions = `Ответь максимально кратко: только название функции и её синтаксис.
Без пояснений и примеров.`

// SystemPrompt builds the system instruction for a response type
func SystemPrompt(rt ResponseType) string {
	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\n")
	if rt == ResponseShort {
		b.WriteString(shortInstructions)
	} else {
		b.WriteString(detailedInstructions)
	}
	return b.String()
}

// UserMessage formats the user's question for the chat request
func UserMessage(question string) string {
	return "Вопрос пользователя: " + question
}
