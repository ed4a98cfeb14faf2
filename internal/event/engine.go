package event

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/akuzmenkova32/Chat-bot-ForFriends/config"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/classify"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/constants"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/db"
)

// Messenger — то, что движку нужно от Telegram: отправить текст и
// повесить реакцию-кнопку на сообщение.
type Messenger interface {
	SendMessage(chatID int64, text string) (int, error)
	React(chatID int64, messageID int, emoji string) error
}

// Engine ведёт жизненный цикл тусы: collecting → voting → fixed.
// Все входящие события чата и срабатывания таймеров проходят через
// один мьютекс, тело обработчика выполняется целиком.
type Engine struct {
	store *db.Store
	msg   Messenger
	cfg   *config.Config

	mu      sync.Mutex
	buffers map[int64]*buffer
	timers  *timerSet
}

func New(store *db.Store, msg Messenger, cfg *config.Config) *Engine {
	return &Engine{
		store:   store,
		msg:     msg,
		cfg:     cfg,
		buffers: make(map[int64]*buffer),
		timers:  newTimerSet(),
	}
}

// Stop гасит все отложенные таймеры (завершение процесса и тесты).
func (e *Engine) Stop() {
	e.timers.stopAll()
}

// StartEvent обрабатывает `!туса`: создаёт событие в статусе
// collecting, сбрасывает буфер вариантов и взводит таймер сбора.
func (e *Engine) StartEvent(chatID, userID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.EnsureChat(chatID); err != nil {
		return err
	}

	ev, err := e.store.CreateEvent(chatID, userID)
	if errors.Is(err, db.ErrEventActive) {
		_, _ = e.msg.SendMessage(chatID, constants.MsgAlreadyActive)
		return nil
	}
	if err != nil {
		return err
	}

	e.buffers[chatID] = &buffer{}
	if _, err := e.msg.SendMessage(chatID, constants.MsgTusaIntro); err != nil {
		return err
	}

	eventID := ev.ID
	e.timers.schedule(eventID, e.cfg.CollectWindow, func() {
		e.collectDeadline(chatID, eventID)
	})
	log.Printf("✅ Туса #%d создана в чате %d", eventID, chatID)
	return nil
}

// HandleText скармливает свободный текст классификатору, пока идёт
// сбор вариантов; вне collecting сообщение игнорируется.
func (e *Engine) HandleText(chatID, userID int64, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.ActiveEvent(chatID)
	if err != nil {
		return err
	}
	if ev == nil || ev.Status != db.StatusCollecting {
		return nil
	}

	buf := e.buffer(ev)
	buf.merge(classify.Extract(text))
	if err := e.store.UpdateOptions(ev.ID, buf.times, buf.places, buf.formats); err != nil {
		return err
	}

	if !e.store.Quiet(chatID) {
		_, _ = e.msg.SendMessage(chatID, constants.MsgCollectingHint)
	}

	if buf.ready() {
		return e.startVoting(chatID, ev.ID)
	}
	return nil
}

// collectDeadline срабатывает по истечении окна сбора. Если вариантов
// всё ещё мало, сбор продолжается без перехода.
func (e *Engine) collectDeadline(chatID int64, eventID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.EventByID(eventID)
	if err != nil {
		log.Println("Ошибка проверки события по таймеру сбора:", err)
		return
	}
	// Устаревший таймер: событие ушло дальше или его сменили.
	if ev == nil || ev.Status != db.StatusCollecting {
		return
	}

	if !e.buffer(ev).ready() {
		if !e.store.Quiet(chatID) {
			_, _ = e.msg.SendMessage(chatID, constants.MsgNeedMoreOptions)
		}
		return
	}

	if err := e.startVoting(chatID, eventID); err != nil {
		log.Println("Ошибка запуска голосования по таймеру:", err)
	}
}

// Status обрабатывает `!статус`.
func (e *Engine) Status(chatID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.ActiveEvent(chatID)
	if err != nil {
		return err
	}
	if ev == nil {
		_, err = e.msg.SendMessage(chatID, constants.MsgNoActiveTusa)
		return err
	}
	text := fmt.Sprintf(constants.MsgStatus,
		ev.Status,
		orPlaceholder(ev.FinalTime),
		orPlaceholder(ev.FinalPlace),
		orPlaceholder(ev.FinalFormat),
	)
	_, err = e.msg.SendMessage(chatID, text)
	return err
}

// SetQuiet обрабатывает `!тише` / `!громче`.
func (e *Engine) SetQuiet(chatID int64, quiet bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.SetQuiet(chatID, quiet); err != nil {
		return err
	}
	text := constants.MsgQuietOff
	if quiet {
		text = constants.MsgQuietOn
	}
	_, err := e.msg.SendMessage(chatID, text)
	return err
}

// Remind обрабатывает `!напомни [N|Nч|выкл]`. Расписание напоминаний
// задаётся конфигом, команда только подтверждает настройку; кривой
// аргумент сводится к ответу по умолчанию.
func (e *Engine) Remind(chatID int64, arg string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.ActiveEvent(chatID)
	if err != nil {
		return err
	}
	if ev == nil || ev.Status != db.StatusFixed {
		_, err = e.msg.SendMessage(chatID, constants.MsgNoActiveTusa)
		return err
	}

	arg = strings.TrimSpace(strings.ToLower(arg))
	switch {
	case arg == "выкл" || arg == "off" || arg == "нет":
		_, err = e.msg.SendMessage(chatID, constants.MsgRemindersOff)
	case arg != "" && classify.ParseHours(arg) > 0:
		_, err = e.msg.SendMessage(chatID,
			fmt.Sprintf(constants.MsgRemindersUpdated, classify.ParseHours(arg)))
	default:
		_, err = e.msg.SendMessage(chatID, constants.MsgRemindersOn)
	}
	return err
}

func orPlaceholder(s string) string {
	if s == "" {
		return constants.Placeholder
	}
	return s
}
