package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEventActive возвращается при попытке создать событие, пока в чате
// идёт сбор вариантов или голосование.
var ErrEventActive = errors.New("в чате уже есть активная туса")

// EnsureChat создаёт запись чата, если её ещё нет.
func (s *Store) EnsureChat(chatID int64) error {
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Chat{ChatID: chatID}).Error
	if err != nil {
		return fmt.Errorf("ошибка создания чата %d: %w", chatID, err)
	}
	return nil
}

// SetQuiet включает/выключает тихий режим чата.
func (s *Store) SetQuiet(chatID int64, quiet bool) error {
	if err := s.EnsureChat(chatID); err != nil {
		return err
	}
	err := s.db.Model(&Chat{}).Where("chat_id = ?", chatID).
		Update("quiet_mode", quiet).Error
	if err != nil {
		return fmt.Errorf("ошибка переключения тихого режима: %w", err)
	}
	return nil
}

// Quiet сообщает, включён ли тихий режим. Незнакомый чат — не тихий.
func (s *Store) Quiet(chatID int64) bool {
	var chat Chat
	if err := s.db.Where("chat_id = ?", chatID).First(&chat).Error; err != nil {
		return false
	}
	return chat.QuietMode
}

// CreateEvent создаёт событие в статусе collecting. Проверка «нет
// активного события» и вставка идут одной транзакцией, чтобы два
// одновременных `!туса` не создали два события.
func (s *Store) CreateEvent(chatID, creatorID int64) (*Event, error) {
	event := &Event{
		ChatID:    chatID,
		CreatorID: creatorID,
		Status:    StatusCollecting,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Event{}).
			Where("chat_id = ? AND status IN ?", chatID, []string{StatusCollecting, StatusVoting}).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEventActive
		}
		return tx.Create(event).Error
	})
	if err != nil {
		if errors.Is(err, ErrEventActive) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка создания события: %w", err)
	}
	return event, nil
}

// ActiveEvent — последнее событие чата в статусе collecting/voting/
// fixed, либо nil.
func (s *Store) ActiveEvent(chatID int64) (*Event, error) {
	var event Event
	err := s.db.
		Where("chat_id = ? AND status IN ?", chatID,
			[]string{StatusCollecting, StatusVoting, StatusFixed}).
		Order("id DESC").
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска активного события: %w", err)
	}
	return &event, nil
}

// EventByID перечитывает событие; nil — если его нет.
func (s *Store) EventByID(eventID uint) (*Event, error) {
	var event Event
	err := s.db.First(&event, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения события %d: %w", eventID, err)
	}
	return &event, nil
}

// UpdateOptions перезаписывает три списка вариантов. Пустой список
// хранится как «[]», не как null.
func (s *Store) UpdateOptions(eventID uint, times, places, formats []string) error {
	err := s.db.Model(&Event{}).Where("id = ?", eventID).Updates(map[string]interface{}{
		"times":   mustJSON(append([]string{}, times...)),
		"places":  mustJSON(append([]string{}, places...)),
		"formats": mustJSON(append([]string{}, formats...)),
	}).Error
	if err != nil {
		return fmt.Errorf("ошибка сохранения вариантов: %w", err)
	}
	return nil
}

// SetStatus — безусловная запись статуса.
func (s *Store) SetStatus(eventID uint, status string) error {
	err := s.db.Model(&Event{}).Where("id = ?", eventID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("ошибка смены статуса: %w", err)
	}
	return nil
}

// SetVotingMessage запоминает сообщение-опрос, к которому привязаны
// реакции.
func (s *Store) SetVotingMessage(eventID uint, messageID int) error {
	err := s.db.Model(&Event{}).Where("id = ?", eventID).
		Update("voting_msg_id", messageID).Error
	if err != nil {
		return fmt.Errorf("ошибка сохранения сообщения голосования: %w", err)
	}
	return nil
}

// SetVotes сохраняет запись голосов.
func (s *Store) SetVotes(eventID uint, votes Votes) error {
	err := s.db.Model(&Event{}).Where("id = ?", eventID).
		Update("votes", mustJSON(votes)).Error
	if err != nil {
		return fmt.Errorf("ошибка сохранения голосов: %w", err)
	}
	return nil
}

// FixPlan атомарно фиксирует план: статус, победители, отметка времени.
func (s *Store) FixPlan(eventID uint, timeOpt, placeOpt, formatOpt string) error {
	now := time.Now()
	err := s.db.Model(&Event{}).Where("id = ?", eventID).Updates(map[string]interface{}{
		"status":       StatusFixed,
		"final_time":   timeOpt,
		"final_place":  placeOpt,
		"final_format": formatOpt,
		"fixed_at":     &now,
	}).Error
	if err != nil {
		return fmt.Errorf("ошибка фиксации плана: %w", err)
	}
	return nil
}

func mustJSON(v interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		// Списки строк и карта голосов всегда маршалятся.
		panic(err)
	}
	return raw
}
