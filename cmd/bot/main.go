package main

import (
	"log"

	"github.com/spf13/cobra"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akuzmenkova32/Chat-bot-ForFriends/config"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/bot"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/db"
	"github.com/akuzmenkova32/Chat-bot-ForFriends/internal/event"
)

var polling bool

var rootCmd = &cobra.Command{
	Use:   "tusabot",
	Short: "Телеграм-бот для сбора тусы: варианты, голосование, напоминания",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().BoolVar(&polling, "polling", false, "длинный опрос вместо вебхука (для локальной отладки)")
}

func run() error {
	cfg := config.LoadConfig()

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return err
	}
	log.Printf("✅ Бот %s запущен", botAPI.Self.UserName)

	sender := bot.NewSender(botAPI)
	engine := event.New(store, sender, cfg)
	defer engine.Stop()
	handler := bot.NewHandler(engine, sender)

	if polling || cfg.WebhookURL == "" {
		log.Println("Режим длинного опроса")
		bot.RunPolling(botAPI, handler)
		return nil
	}
	return bot.RunWebhook(botAPI, handler, cfg.WebhookURL, cfg.SecretToken, ":8000")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("Ошибка запуска бота: ", err)
	}
}
