package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Options — варианты из одного сообщения, разложенные по категориям.
type Options struct {
	Times   []string
	Places  []string
	Formats []string
}

var (
	fragmentSplit = regexp.MustCompile(`[\n;]+`)
	spaceRun      = regexp.MustCompile(`\s+`)
	wordSplit     = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	datePattern   = regexp.MustCompile(`\d{1,2}[./]\d{1,2}`)
	clockPattern  = regexp.MustCompile(`\d{1,2}:\d{2}`)
	hoursPattern  = regexp.MustCompile(`(\d{1,2})\s*ч`)
)

// dayWords — маркеры времени: относительные дни и дни недели.
// Сравнение по целым словам: \b в RE2 не дружит с кириллицей.
var dayWords = map[string]struct{}{
	"сегодня": {}, "завтра": {}, "послезавтра": {},
	"пн": {}, "понедельник": {},
	"вт": {}, "вторник": {},
	"ср": {}, "среда": {}, "среду": {},
	"чт": {}, "четверг": {},
	"пт": {}, "пятница": {}, "пятницу": {},
	"сб": {}, "суббота": {}, "субботу": {},
	"вс": {}, "воскресенье": {},
}

// formatStems — основы слов, обозначающих формат тусы.
// Сравнение по префиксу слова, чтобы ловить падежи («в баре», «настолки»).
var formatStems = []string{
	"бар", "паб", "дом", "кино", "прогулк", "настолк",
	"вечеринк", "клуб", "кафе", "ресторан", "пикник",
}

// Extract разбирает свободный текст на варианты «когда/где/формат».
// Фрагменты разделяются переводами строк и точками с запятой; порядок
// правил фиксированный: сначала время, потом формат, остальное — место.
func Extract(text string) Options {
	text = strings.ToLower(text)

	var opts Options
	for _, frag := range fragmentSplit.Split(text, -1) {
		frag = NormalizeWhitespace(frag)
		if frag == "" {
			continue
		}
		switch {
		case looksLikeTime(frag):
			opts.Times = append(opts.Times, frag)
		case looksLikeFormat(frag):
			opts.Formats = append(opts.Formats, frag)
		default:
			opts.Places = append(opts.Places, frag)
		}
	}

	opts.Times = Uniq(opts.Times)
	opts.Places = Uniq(opts.Places)
	opts.Formats = Uniq(opts.Formats)
	return opts
}

func looksLikeTime(frag string) bool {
	if datePattern.MatchString(frag) || clockPattern.MatchString(frag) {
		return true
	}
	for _, w := range wordSplit.Split(frag, -1) {
		if _, ok := dayWords[w]; ok {
			return true
		}
	}
	return false
}

func looksLikeFormat(frag string) bool {
	for _, w := range wordSplit.Split(frag, -1) {
		for _, stem := range formatStems {
			if strings.HasPrefix(w, stem) {
				return true
			}
		}
	}
	return false
}

// NormalizeWhitespace схлопывает пробельные последовательности и
// обрезает края.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Uniq убирает дубликаты (по нормализованным пробелам), сохраняя
// порядок первых вхождений. Пустые строки выбрасываются.
func Uniq(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		item = NormalizeWhitespace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// FormatOptions нумерует варианты буквами: "A) бар".
func FormatOptions(opts []string) string {
	var sb strings.Builder
	for i, o := range opts {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%c) %s", letters[i%len(letters)], o)
	}
	return sb.String()
}

// ParseHours достаёт количество часов из аргумента «!напомни»:
// «за 3ч», «3 ч» или просто число. 0 — не распознали.
func ParseHours(arg string) int {
	if m := hoursPattern.FindStringSubmatch(arg); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0
	}
	return n
}
