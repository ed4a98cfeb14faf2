package bot

import (
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/constants"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/event"
)

// Handler разруливает входящие обновления: команды и свободный текст —
// движку тусы, реакции — в учёт голосов.
type Handler struct {
	engine *event.Engine
	sender *Sender
}

func NewHandler(engine *event.Engine, sender *Sender) *Handler {
	return &Handler{engine: engine, sender: sender}
}

func (h *Handler) HandleUpdate(u *Update) {
	switch {
	case u.MessageReaction != nil:
		h.handleReaction(u.MessageReaction)
	case u.Message != nil:
		h.handleMessage(u.Message)
	}
}

func (h *Handler) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}
	chatID := msg.Chat.ID
	userID := msg.From.ID

	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}

	// Команды — префиксом первого слова, а не слэшем, как привыкли в
	// чате. `\b` тут не помощник: RE2 не считает кириллицу словом.
	var err error
	switch cmd := fields[0]; {
	case strings.HasPrefix(cmd, "/start"):
		greeting := constants.MsgStartGroup
		if msg.Chat.Type == "private" {
			greeting = constants.MsgStartPrivate
		}
		_, err = h.sender.SendMessage(chatID, greeting)
	case cmd == "!туса":
		err = h.engine.StartEvent(chatID, userID)
	case cmd == "!статус":
		err = h.engine.Status(chatID)
	case cmd == "!тише":
		err = h.engine.SetQuiet(chatID, true)
	case cmd == "!громче":
		err = h.engine.SetQuiet(chatID, false)
	case cmd == "!напомни":
		arg := strings.TrimSpace(strings.TrimPrefix(msg.Text, "!напомни"))
		err = h.engine.Remind(chatID, arg)
	default:
		err = h.engine.HandleText(chatID, userID, msg.Text)
	}
	if err != nil {
		log.Printf("❌ Ошибка обработки сообщения в чате %d: %v", chatID, err)
	}
}

func (h *Handler) handleReaction(r *MessageReactionUpdated) {
	// Анонимные реакции не несут пользователя — такие не считаем.
	if r.User == nil {
		return
	}
	var emojis []string
	for _, rt := range r.NewReaction {
		if rt.Type == "emoji" && rt.Emoji != "" {
			emojis = append(emojis, rt.Emoji)
		}
	}
	if len(emojis) == 0 {
		return
	}
	if err := h.engine.HandleReaction(r.Chat.ID, r.User.ID, r.MessageID, emojis); err != nil {
		log.Printf("❌ Ошибка учёта реакции в чате %d: %v", r.Chat.ID, err)
	}
}
