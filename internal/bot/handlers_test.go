package bot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akuzmenkova32/Chat-bot-ForFriends/config"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/constants"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/db"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/event"
)

// recordingMessenger подменяет Telegram в тестах маршрутизации.
type recordingMessenger struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingMessenger) SendMessage(chatID int64, text string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return len(r.sent), nil
}

func (r *recordingMessenger) React(chatID int64, messageID int, emoji string) error {
	return nil
}

func (r *recordingMessenger) contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sent {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func newTestHandler(t *testing.T) (*Handler, *db.Store, *recordingMessenger) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	msg := &recordingMessenger{}
	cfg := &config.Config{
		CollectWindow:  time.Hour,
		VoteWindow:     time.Hour,
		ReminderDelays: []time.Duration{time.Hour},
	}
	engine := event.New(store, msg, cfg)
	t.Cleanup(engine.Stop)
	return NewHandler(engine, nil), store, msg
}

func textUpdate(chatID, userID int64, text string) *Update {
	return &Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{ID: userID},
		},
	}
}

func TestHandleUpdateRoutesCommands(t *testing.T) {
	h, store, msg := newTestHandler(t)

	h.HandleUpdate(textUpdate(-1, 1, "!туса"))
	assert.True(t, msg.contains("Собираем тусу"))

	ev, err := store.ActiveEvent(-1)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, db.StatusCollecting, ev.Status)

	h.HandleUpdate(textUpdate(-1, 1, "!статус"))
	assert.True(t, msg.contains("Статус тусы"))

	h.HandleUpdate(textUpdate(-1, 1, "!тише"))
	assert.True(t, msg.contains(constants.MsgQuietOn))

	h.HandleUpdate(textUpdate(-1, 1, "!громче"))
	assert.True(t, msg.contains(constants.MsgQuietOff))
}

func TestHandleUpdateFreeTextFeedsCollecting(t *testing.T) {
	h, store, _ := newTestHandler(t)

	h.HandleUpdate(textUpdate(-1, 1, "!туса"))
	h.HandleUpdate(textUpdate(-1, 2, "завтра в 19:00; бар; у реки"))

	ev, err := store.ActiveEvent(-1)
	require.NoError(t, err)
	times, places, formats := ev.OptionLists()
	assert.Equal(t, []string{"завтра в 19:00"}, times)
	assert.Equal(t, []string{"у реки"}, places)
	assert.Equal(t, []string{"бар"}, formats)
}

func TestHandleUpdateIgnoresJunk(t *testing.T) {
	h, _, msg := newTestHandler(t)

	h.HandleUpdate(&Update{})
	h.HandleUpdate(&Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: -1}}})
	h.HandleUpdate(&Update{MessageReaction: &MessageReactionUpdated{
		Chat:      tgbotapi.Chat{ID: -1},
		MessageID: 5,
		// User == nil: анонимная реакция
		NewReaction: []ReactionType{{Type: "emoji", Emoji: "🅰️"}},
	}})

	assert.Empty(t, msg.sent)
}

func TestDecodeMessageReactionUpdate(t *testing.T) {
	payload := `{
		"update_id": 7,
		"message_reaction": {
			"chat": {"id": -100500, "type": "supergroup"},
			"message_id": 42,
			"user": {"id": 7, "is_bot": false, "first_name": "Ivan"},
			"old_reaction": [],
			"new_reaction": [{"type": "emoji", "emoji": "🅰️"}]
		}
	}`

	var u Update
	require.NoError(t, json.Unmarshal([]byte(payload), &u))
	require.NotNil(t, u.MessageReaction)
	assert.Nil(t, u.Message)
	assert.EqualValues(t, -100500, u.MessageReaction.Chat.ID)
	assert.Equal(t, 42, u.MessageReaction.MessageID)
	require.NotNil(t, u.MessageReaction.User)
	assert.EqualValues(t, 7, u.MessageReaction.User.ID)
	require.Len(t, u.MessageReaction.NewReaction, 1)
	assert.Equal(t, "🅰️", u.MessageReaction.NewReaction[0].Emoji)
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	h, _, _ := newTestHandler(t)
	srv := httptest.NewServer(Router(h, "s3cret"))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/webhook", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookAcceptsUpdate(t *testing.T) {
	h, store, _ := newTestHandler(t)
	srv := httptest.NewServer(Router(h, "s3cret"))
	defer srv.Close()

	body := `{"update_id":1,"message":{"message_id":10,"text":"!туса","chat":{"id":-55,"type":"group"},"from":{"id":9,"is_bot":false,"first_name":"Ivan"}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/webhook", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set(secretTokenHeader, "s3cret")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ev, err := store.ActiveEvent(-55)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, db.StatusCollecting, ev.Status)
}

func TestWebhookRejectsBadPayload(t *testing.T) {
	h, _, _ := newTestHandler(t)
	srv := httptest.NewServer(Router(h, ""))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/webhook", "application/json", strings.NewReader("не json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
