package event

import (
	"fmt"
	"log"

	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/constants"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/db"
)

// HandleReaction превращает реакцию на сообщение-опрос в голоса.
// Реакция одна на все три категории: по индексу эмодзи голос
// записывается в каждую категорию, где такой вариант есть (осознанное
// ограничение реакций Telegram, см. README).
func (e *Engine) HandleReaction(chatID, userID int64, messageID int, emojis []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.ActiveEvent(chatID)
	if err != nil {
		return err
	}
	if ev == nil || ev.Status != db.StatusVoting || ev.VotingMsgID != messageID {
		return nil
	}

	times, places, formats := ev.OptionLists()
	maxLen := len(times)
	if len(places) > maxLen {
		maxLen = len(places)
	}
	if len(formats) > maxLen {
		maxLen = len(formats)
	}

	votes := ev.DecodeVotes()
	changed := false
	for _, emoji := range emojis {
		idx := emojiIndex(emoji, maxLen)
		if idx < 0 {
			continue
		}
		if idx < len(times) && votes.Add(db.CategoryTimes, idx, userID) {
			changed = true
		}
		if idx < len(places) && votes.Add(db.CategoryPlaces, idx, userID) {
			changed = true
		}
		if idx < len(formats) && votes.Add(db.CategoryFormats, idx, userID) {
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := e.store.SetVotes(ev.ID, votes); err != nil {
		return err
	}
	log.Printf("📩 Голос пользователя %d учтён (туса #%d)", userID, ev.ID)
	return nil
}

// emojiIndex — позиция эмодзи в активной части палитры, -1 если эмодзи
// не из неё.
func emojiIndex(emoji string, maxLen int) int {
	limit := len(constants.VoteEmoji)
	if maxLen < limit {
		limit = maxLen
	}
	for i := 0; i < limit; i++ {
		if constants.VoteEmoji[i] == emoji {
			return i
		}
	}
	return -1
}

// finalize подводит итог: в каждой категории побеждает вариант с
// максимумом голосов, при равенстве — с меньшим индексом. Вызывается
// под e.mu.
func (e *Engine) finalize(chatID int64, ev *db.Event) error {
	times, places, formats := ev.OptionLists()
	votes := ev.DecodeVotes()

	wTime := winner(votes, db.CategoryTimes, times)
	wPlace := winner(votes, db.CategoryPlaces, places)
	wFormat := winner(votes, db.CategoryFormats, formats)

	if err := e.store.FixPlan(ev.ID, wTime, wPlace, wFormat); err != nil {
		return err
	}

	text := fmt.Sprintf(constants.MsgPlanFixed, wTime, wPlace, wFormat)
	if _, err := e.msg.SendMessage(chatID, text); err != nil {
		return err
	}

	e.timers.cancel(ev.ID)
	e.scheduleReminders(chatID, ev.ID)
	log.Printf("🔒 План тусы #%d зафиксирован: %s / %s / %s", ev.ID, wTime, wPlace, wFormat)
	return nil
}

func winner(votes db.Votes, category string, options []string) string {
	if len(options) == 0 {
		return constants.Placeholder
	}
	best := 0
	for i := 1; i < len(options); i++ {
		if votes.Count(category, i) > votes.Count(category, best) {
			best = i
		}
	}
	return options[best]
}
