// config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	WebhookURL    string
	SecretToken   string
	DBPath        string

	// Окна жизненного цикла тусы и задержки напоминаний.
	CollectWindow  time.Duration
	VoteWindow     time.Duration
	ReminderDelays []time.Duration

	DebugTimers bool
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ Не удалось загрузить .env файл, используем переменные среды")
	}

	debugTimers := false
	if val, ok := os.LookupEnv("DEBUG_TIMERS"); ok {
		// если "1" или "true" — установим debugTimers = true
		debugTimers, _ = strconv.ParseBool(val)
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		SecretToken:    os.Getenv("SECRET_TOKEN"),
		DBPath:         envOr("DB_PATH", "tusa.db"),
		CollectWindow:  envDuration("COLLECT_WINDOW", 7*time.Minute),
		VoteWindow:     envDuration("VOTE_WINDOW", 12*time.Hour),
		ReminderDelays: []time.Duration{24 * time.Hour, 2 * time.Hour, 30 * time.Minute},
		DebugTimers:    debugTimers,
	}

	if cfg.DebugTimers {
		// В режиме отладки все таймеры срабатывают за секунды.
		log.Println("[DEBUG] Режим отладки таймеров включен")
		cfg.CollectWindow = 20 * time.Second
		cfg.VoteWindow = 40 * time.Second
		cfg.ReminderDelays = []time.Duration{15 * time.Second, 10 * time.Second, 5 * time.Second}
	}

	return cfg
}

func envOr(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Printf("⚠️ Некорректная длительность %s=%q, используем %s", key, val, def)
	}
	return def
}
