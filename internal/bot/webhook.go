package bot

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// RunWebhook регистрирует вебхук у Telegram и поднимает HTTP-сервер,
// принимающий обновления на POST /webhook.
func RunWebhook(api *tgbotapi.BotAPI, h *Handler, url, secret, addr string) error {
	// secret_token появился в Bot API 6.1, в tgbotapi v5 его нет —
	// регистрируем вебхук сырым запросом.
	params := tgbotapi.Params{
		"url":             url,
		"allowed_updates": allowedUpdates,
	}
	if secret != "" {
		params["secret_token"] = secret
	}
	if _, err := api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("ошибка регистрации вебхука: %w", err)
	}
	log.Printf("✅ Вебхук зарегистрирован: %s", url)

	log.Printf("✅ Слушаем вебхук на %s", addr)
	return http.ListenAndServe(addr, Router(h, secret))
}

// Router собирает HTTP-обработчик вебхука: проверка секрета, разбор
// обновления, передача в Handler.
func Router(h *Handler, secret string) http.Handler {
	r := chi.NewRouter()
	r.Post("/webhook", func(w http.ResponseWriter, req *http.Request) {
		if secret != "" && req.Header.Get(secretTokenHeader) != secret {
			http.Error(w, "bad secret token", http.StatusUnauthorized)
			return
		}

		var u Update
		if err := json.NewDecoder(req.Body).Decode(&u); err != nil {
			http.Error(w, "bad update payload", http.StatusBadRequest)
			return
		}
		h.HandleUpdate(&u)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	return r
}
