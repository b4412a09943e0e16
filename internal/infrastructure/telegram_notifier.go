package infrastructure

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramNotifier pushes new-session alerts to owners over a shared bot.
// With an empty token it degrades to a no-op so local setups work without one.
type TelegramNotifier struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

func NewTelegramNotifier(token string, log zerolog.Logger) *TelegramNotifier {
	n := &TelegramNotifier{log: log}
	if token == "" {
		return n
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Warn().Err(err).Msg("telegram notifier disabled: invalid bot token")
		return n
	}
	n.bot = bot
	return n
}

// NotifyNewSession is best-effort; delivery failures are logged, never returned.
func (n *TelegramNotifier) NotifyNewSession(chatID int64, visitorName string) {
	if n.bot == nil || chatID == 0 {
		return
	}

	if visitorName == "" {
		visitorName = "A visitor"
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("💬 %s started a chat on your widget", visitorName))
	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send telegram notification")
	}
}
