package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sentiment-trading/config"

	"go.uber.org/zap/zapcore"
)

const keyLogHookSendAlert = "send_alert"

// AlertCore forwards flagged log entries at or above the configured level to
// the Telegram alert chat, in addition to the normal core output.
type AlertCore struct {
	cfg      *config.Config
	core     zapcore.Core
	minLevel zapcore.Level
}

func newAlertCore(cfg *config.Config, core zapcore.Core) zapcore.Core {
	minLevel := zapcore.ErrorLevel
	if lvl, err := zapcore.ParseLevel(cfg.Telegram.AlertMinLevel); err == nil {
		minLevel = lvl
	}
	return &AlertCore{cfg: cfg, core: core, minLevel: minLevel}
}

func (a *AlertCore) Enabled(lvl zapcore.Level) bool {
	return a.core.Enabled(lvl)
}

func (a *AlertCore) With(fields []zapcore.Field) zapcore.Core {
	return &AlertCore{
		cfg:      a.cfg,
		core:     a.core.With(fields),
		minLevel: a.minLevel,
	}
}

func (a *AlertCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(entry.Level) {
		// Write goes through this core only; it forwards to the wrapped core.
		return checkedEntry.AddCore(entry, a)
	}
	return checkedEntry
}

func (a *AlertCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	shouldSend := false
	for _, f := range fields {
		if f.Key == keyLogHookSendAlert && f.Type == zapcore.BoolType && f.Integer == 1 {
			shouldSend = true
			break
		}
	}
	if entry.Level >= a.minLevel && shouldSend && a.cfg.Telegram.BotToken != "" {
		go a.sendTelegramAlert(entry, fields) // async so logging never blocks
	}
	return a.core.Write(entry, fields)
}

func (a *AlertCore) Sync() error {
	return a.core.Sync()
}

func (a *AlertCore) sendTelegramAlert(entry zapcore.Entry, fields []zapcore.Field) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	fieldStr := ""
	for k, v := range enc.Fields {
		if k == keyLogHookSendAlert {
			continue
		}
		fieldStr += fmt.Sprintf("• %s: %v\n", k, v)
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05")

	message := fmt.Sprintf(
		"🚨 *%s Alert*\n\n*Message:* %s\n\n*Fields:*\n%s\n*Time:* %s",
		entry.Level.CapitalString(),
		entry.Message,
		fieldStr,
		timestamp,
	)

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", a.cfg.Telegram.BotToken)
	payload := map[string]interface{}{
		"chat_id":    a.cfg.Telegram.ChatID,
		"text":       message,
		"parse_mode": "Markdown",
	}

	jsonBody, _ := json.Marshal(payload)
	http.Post(url, "application/json", bytes.NewBuffer(jsonBody))
}
