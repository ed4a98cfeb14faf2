package db

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Статусы события. Активным считается любой из трёх.
const (
	StatusCollecting = "collecting"
	StatusVoting     = "voting"
	StatusFixed      = "fixed"
)

type Chat struct {
	gorm.Model
	ChatID    int64 `gorm:"uniqueIndex"`
	QuietMode bool
}

type Event struct {
	gorm.Model
	ChatID      int64 `gorm:"index:idx_events_chat_status"`
	CreatorID   int64
	Status      string `gorm:"index:idx_events_chat_status"`
	Times       datatypes.JSON
	Places      datatypes.JSON
	Formats     datatypes.JSON
	Votes       datatypes.JSON
	FinalTime   string
	FinalPlace  string
	FinalFormat string
	VotingMsgID int
	FixedAt     *time.Time
}

// OptionLists декодирует три списка вариантов из JSON-колонок.
func (e *Event) OptionLists() (times, places, formats []string) {
	return decodeList(e.Times), decodeList(e.Places), decodeList(e.Formats)
}

func decodeList(raw datatypes.JSON) []string {
	var out []string
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
