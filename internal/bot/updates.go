package bot

import (
	"encoding/json"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Update — свой конверт обновления: типы tgbotapi v5 отстают от Bot
// API 7.0 и не знают про message_reaction, поэтому getUpdates и вебхук
// разбираются вручную.
type Update struct {
	UpdateID        int                     `json:"update_id"`
	Message         *tgbotapi.Message       `json:"message"`
	MessageReaction *MessageReactionUpdated `json:"message_reaction"`
}

// MessageReactionUpdated — изменение реакций на сообщении.
type MessageReactionUpdated struct {
	Chat        tgbotapi.Chat  `json:"chat"`
	MessageID   int            `json:"message_id"`
	User        *tgbotapi.User `json:"user"`
	OldReaction []ReactionType `json:"old_reaction"`
	NewReaction []ReactionType `json:"new_reaction"`
}

type ReactionType struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
}

// allowedUpdates — какие обновления нам вообще нужны.
const allowedUpdates = `["message","message_reaction"]`

// RunPolling крутит длинный опрос getUpdates. Обновления
// обрабатываются последовательно, тело обработчика — до конца.
func RunPolling(api *tgbotapi.BotAPI, h *Handler) {
	// Снимаем вебхук, иначе getUpdates вернёт ошибку.
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Println("⚠️ Не удалось снять вебхук:", err)
	}

	offset := 0
	for {
		params := tgbotapi.Params{"allowed_updates": allowedUpdates}
		params.AddNonZero("offset", offset)
		params.AddNonZero("timeout", 60)

		resp, err := api.MakeRequest("getUpdates", params)
		if err != nil {
			log.Println("Ошибка getUpdates:", err)
			time.Sleep(3 * time.Second)
			continue
		}

		var updates []Update
		if err := json.Unmarshal(resp.Result, &updates); err != nil {
			log.Println("Ошибка разбора обновлений:", err)
			continue
		}
		for i := range updates {
			u := &updates[i]
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			h.HandleUpdate(u)
		}
	}
}
