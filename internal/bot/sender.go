package bot

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender отправляет сообщения и реакции через Bot API.
type Sender struct {
	api *tgbotapi.BotAPI
}

func NewSender(api *tgbotapi.BotAPI) *Sender {
	return &Sender{api: api}
}

// SendMessage шлёт Markdown-сообщение и возвращает его message_id.
func (s *Sender) SendMessage(chatID int64, text string) (int, error) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	sent, err := s.api.Send(m)
	if err != nil {
		return 0, fmt.Errorf("ошибка отправки сообщения: %w", err)
	}
	return sent.MessageID, nil
}

// React вешает эмодзи-реакцию бота на сообщение. В tgbotapi v5 нет
// setMessageReaction, зовём метод сырым запросом.
func (s *Sender) React(chatID int64, messageID int, emoji string) error {
	reaction, _ := json.Marshal([]map[string]string{
		{"type": "emoji", "emoji": emoji},
	})

	params := tgbotapi.Params{"reaction": string(reaction)}
	params.AddNonZero64("chat_id", chatID)
	params.AddNonZero("message_id", messageID)

	if _, err := s.api.MakeRequest("setMessageReaction", params); err != nil {
		return fmt.Errorf("ошибка реакции на сообщение %d: %w", messageID, err)
	}
	return nil
}
