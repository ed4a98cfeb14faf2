package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		times   []string
		places  []string
		formats []string
	}{
		{
			name:    "время место и формат через точку с запятой",
			text:    "завтра в 19:00; бар; Иван's place",
			times:   []string{"завтра в 19:00"},
			places:  []string{"иван's place"},
			formats: []string{"бар"},
		},
		{
			name:    "перевод строки тоже разделитель",
			text:    "в субботу\nнастолки у Пети",
			times:   []string{"в субботу"},
			formats: []string{"настолки у пети"},
		},
		{
			name:  "дата и время часов",
			text:  "12.05; в 18:30",
			times: []string{"12.05", "в 18:30"},
		},
		{
			name:    "формат по основе слова",
			text:    "в баре на крыше; прогулка по набережной",
			formats: []string{"в баре на крыше", "прогулка по набережной"},
		},
		{
			name:   "всё прочее считается местом",
			text:   "улица ленина 5",
			places: []string{"улица ленина 5"},
		},
		{
			name:  "время побеждает формат при совпадении",
			text:  "завтра в бар",
			times: []string{"завтра в бар"},
		},
		{
			name:    "дубликаты внутри сообщения схлопываются",
			text:    "бар; бар;  бар ",
			formats: []string{"бар"},
		},
		{
			name: "пустые фрагменты отбрасываются",
			text: " ; ;\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Extract(tt.text)
			assert.Equal(t, tt.times, opts.Times, "times")
			assert.Equal(t, tt.places, opts.Places, "places")
			assert.Equal(t, tt.formats, opts.Formats, "formats")
		})
	}
}

func TestExtractIsPure(t *testing.T) {
	text := "завтра в 19:00; бар; у реки"
	first := Extract(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(text))
	}
}

func TestUniq(t *testing.T) {
	in := []string{"бар", " бар", "бар  ", "паб", "", "  ", "паб"}
	out := Uniq(in)
	require.Equal(t, []string{"бар", "паб"}, out)

	// идемпотентность
	assert.Equal(t, out, Uniq(out))
}

func TestUniqKeepsFirstOccurrenceOrder(t *testing.T) {
	out := Uniq([]string{"c", "a", "b", "a", "c"})
	assert.Equal(t, []string{"c", "a", "b"}, out)
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "завтра в 19:00", NormalizeWhitespace("  завтра \t в\n19:00 "))
	assert.Equal(t, "", NormalizeWhitespace(" \t\n "))
}

func TestFormatOptions(t *testing.T) {
	assert.Equal(t, "A) бар\nB) паб", FormatOptions([]string{"бар", "паб"}))
	assert.Equal(t, "", FormatOptions(nil))
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		arg  string
		want int
	}{
		{"3ч", 3},
		{"за 12 ч", 12},
		{"5", 5},
		{"выкл", 0},
		{"", 0},
		{"много", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseHours(tt.arg), "arg=%q", tt.arg)
	}
}
