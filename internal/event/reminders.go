package event

import (
	"fmt"
	"log"

	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/constants"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/db"
)

// scheduleReminders взводит цепочку напоминаний для зафиксированной
// тусы. Задержки берутся из конфига: время тусы — свободный текст, из
// него ничего не парсится. Вызывается под e.mu.
func (e *Engine) scheduleReminders(chatID int64, eventID uint) {
	e.scheduleReminder(chatID, eventID, 0)
}

func (e *Engine) scheduleReminder(chatID int64, eventID uint, step int) {
	if step >= len(e.cfg.ReminderDelays) {
		return
	}
	e.timers.schedule(eventID, e.cfg.ReminderDelays[step], func() {
		e.fireReminder(chatID, eventID, step)
	})
}

// fireReminder шлёт одно напоминание. Если тусу сменили или статус
// ушёл от fixed — вся цепочка молча останавливается.
func (e *Engine) fireReminder(chatID int64, eventID uint, step int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.ActiveEvent(chatID)
	if err != nil {
		log.Println("Ошибка проверки события перед напоминанием:", err)
		return
	}
	if ev == nil || ev.ID != eventID || ev.Status != db.StatusFixed {
		return
	}

	text := fmt.Sprintf(constants.MsgReminder,
		reminderField(ev.FinalTime, "скоро"),
		reminderField(ev.FinalPlace, "где-то"),
		reminderField(ev.FinalFormat, "как-нибудь"),
	)
	if _, err := e.msg.SendMessage(chatID, text); err != nil {
		log.Printf("Ошибка отправки напоминания (туса #%d): %v", eventID, err)
	} else {
		log.Printf("✅ Отправлено напоминание по тусе #%d", eventID)
	}

	e.scheduleReminder(chatID, eventID, step+1)
}

func reminderField(s, fallback string) string {
	if s == "" || s == constants.Placeholder {
		return fallback
	}
	return s
}
