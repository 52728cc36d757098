package telegram

import (
	"context"
	"fmt"
	"sentiment-trading/config"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/ratelimit"
	"strconv"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// Notifier sends messages to the configured alert chat, rate limited per
// chat so the bot stays inside the Telegram API budget.
type Notifier struct {
	cfg     *config.TelegramConfig
	log     *logger.Logger
	bot     *telebot.Bot
	limiter *ratelimit.LimiterStore
}

func NewNotifier(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *Notifier {
	maxPerSecond := cfg.MaxMessagePerSecond
	if maxPerSecond <= 0 {
		maxPerSecond = 1
	}
	return &Notifier{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		limiter: ratelimit.NewLimiterStore(rate.Limit(maxPerSecond), maxPerSecond),
	}
}

// Enabled reports whether a bot is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.bot != nil && n.cfg.ChatID != ""
}

// Send delivers a MarkdownV2 message to the alert chat.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if !n.Enabled() {
		return nil
	}

	chatID, err := strconv.ParseInt(n.cfg.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", n.cfg.ChatID, err)
	}

	if err := n.limiter.GetLimiter(n.cfg.ChatID).Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate limiter: %w", err)
	}

	_, err = n.bot.Send(telebot.ChatID(chatID), text, &telebot.SendOptions{
		ParseMode: telebot.ModeMarkdownV2,
	})
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
