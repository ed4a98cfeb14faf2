package event

import (
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/classify"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/constants"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/db"
)

// buffer копит варианты чата с начала сбора. Это кэш поверх списков в
// строке события: при промахе (например, после рестарта процесса)
// восстанавливается из базы, так что порог перехода всегда считается
// от сохранённого состояния.
type buffer struct {
	times   []string
	places  []string
	formats []string
}

// buffer возвращает буфер чата, поднимая его из строки события при
// необходимости. Вызывается под e.mu.
func (e *Engine) buffer(ev *db.Event) *buffer {
	if buf, ok := e.buffers[ev.ChatID]; ok {
		return buf
	}
	times, places, formats := ev.OptionLists()
	buf := &buffer{times: times, places: places, formats: formats}
	e.buffers[ev.ChatID] = buf
	return buf
}

// merge дописывает новые варианты; списки растут монотонно,
// дубликаты отбрасываются.
func (b *buffer) merge(opts classify.Options) {
	b.times = classify.Uniq(append(b.times, opts.Times...))
	b.places = classify.Uniq(append(b.places, opts.Places...))
	b.formats = classify.Uniq(append(b.formats, opts.Formats...))
}

// ready — условие перехода к голосованию: минимум по
// MinOptionsPerCategory вариантов в каждой категории.
func (b *buffer) ready() bool {
	return len(b.times) >= constants.MinOptionsPerCategory &&
		len(b.places) >= constants.MinOptionsPerCategory &&
		len(b.formats) >= constants.MinOptionsPerCategory
}
