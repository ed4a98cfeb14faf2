package db

import (
	"encoding/json"
	"strconv"
)

// Категории голосования. Ключи совпадают с форматом votes_json.
const (
	CategoryTimes   = "times"
	CategoryPlaces  = "places"
	CategoryFormats = "formats"
)

// Votes — запись голосов: категория → индекс варианта (строкой, как в
// JSON) → кто проголосовал.
type Votes map[string]map[string][]int64

// NewVotes создаёт пустую запись под заданные длины категорий.
func NewVotes(nTimes, nPlaces, nFormats int) Votes {
	v := Votes{}
	for cat, n := range map[string]int{
		CategoryTimes:   nTimes,
		CategoryPlaces:  nPlaces,
		CategoryFormats: nFormats,
	} {
		v[cat] = make(map[string][]int64, n)
		for i := 0; i < n; i++ {
			v[cat][strconv.Itoa(i)] = []int64{}
		}
	}
	return v
}

// Add записывает голос пользователя за вариант idx в категории.
// Повторный голос того же пользователя не дублируется; возвращает
// true, если голос действительно добавлен.
func (v Votes) Add(category string, idx int, userID int64) bool {
	opts, ok := v[category]
	if !ok {
		return false
	}
	key := strconv.Itoa(idx)
	voters, ok := opts[key]
	if !ok {
		return false
	}
	for _, id := range voters {
		if id == userID {
			return false
		}
	}
	opts[key] = append(voters, userID)
	return true
}

// Count — количество голосов за вариант idx в категории.
func (v Votes) Count(category string, idx int) int {
	return len(v[category][strconv.Itoa(idx)])
}

// DecodeVotes восстанавливает запись голосов события.
func (e *Event) DecodeVotes() Votes {
	v := Votes{}
	if len(e.Votes) == 0 {
		return v
	}
	_ = json.Unmarshal(e.Votes, &v)
	return v
}
