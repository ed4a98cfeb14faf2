package event

import (
	"fmt"
	"log"

	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/classify"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/constants"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/db"
)

// startVoting переводит событие в voting: списки вариантов с этого
// момента заморожены, в чат уходит сообщение-опрос, на него вешаются
// реакции-кнопки. Вызывается под e.mu.
func (e *Engine) startVoting(chatID int64, eventID uint) error {
	ev, err := e.store.EventByID(eventID)
	if err != nil {
		return err
	}
	if ev == nil || ev.Status != db.StatusCollecting {
		return nil
	}

	if err := e.store.SetStatus(eventID, db.StatusVoting); err != nil {
		return err
	}

	buf := e.buffer(ev)
	text := fmt.Sprintf(constants.MsgVotingStart,
		classify.FormatOptions(buf.times),
		classify.FormatOptions(buf.places),
		classify.FormatOptions(buf.formats),
	)
	msgID, err := e.msg.SendMessage(chatID, text)
	if err != nil {
		return fmt.Errorf("ошибка отправки опроса: %w", err)
	}
	if err := e.store.SetVotingMessage(eventID, msgID); err != nil {
		return err
	}

	// Одна шкала индексов на все категории, по длине самой длинной,
	// но не шире палитры. Реакции — best-effort.
	for i := 0; i < paletteSize(buf); i++ {
		if err := e.msg.React(chatID, msgID, constants.VoteEmoji[i]); err != nil {
			log.Printf("⚠️ Не удалось повесить реакцию %s: %v", constants.VoteEmoji[i], err)
		}
	}

	votes := db.NewVotes(len(buf.times), len(buf.places), len(buf.formats))
	if err := e.store.SetVotes(eventID, votes); err != nil {
		return err
	}

	// Таймер сбора больше не нужен; взводим дедлайн голосования.
	e.timers.cancel(eventID)
	e.timers.schedule(eventID, e.cfg.VoteWindow, func() {
		e.voteDeadline(chatID, eventID)
	})
	log.Printf("🗳 Голосование по тусе #%d запущено (msgID=%d)", eventID, msgID)
	return nil
}

// voteDeadline срабатывает по истечении окна голосования.
func (e *Engine) voteDeadline(chatID int64, eventID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.EventByID(eventID)
	if err != nil {
		log.Println("Ошибка проверки события по таймеру голосования:", err)
		return
	}
	if ev == nil || ev.Status != db.StatusVoting {
		return
	}

	if err := e.finalize(chatID, ev); err != nil {
		log.Println("Ошибка фиксации плана:", err)
	}
}

// paletteSize — сколько реакций-кнопок нужно под самый длинный список.
func paletteSize(buf *buffer) int {
	n := len(buf.times)
	if len(buf.places) > n {
		n = len(buf.places)
	}
	if len(buf.formats) > n {
		n = len(buf.formats)
	}
	if n > len(constants.VoteEmoji) {
		n = len(constants.VoteEmoji)
	}
	return n
}
