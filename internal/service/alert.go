package service

import (
	"context"
	"fmt"
	"sentiment-trading/config"
	"sentiment-trading/internal/model"
	"sentiment-trading/pkg/httpclient"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/telegram"
	"sentiment-trading/pkg/utils"
)

// AlertService pushes emitted trading signals to the configured downstream
// channels (Telegram chat and signal webhook). Delivery is best effort:
// failures are logged and never fed back into the analysis pipeline.
type AlertService interface {
	NotifySignal(ctx context.Context, pattern *model.PatternResult)
}

type alertService struct {
	cfg      *config.Config
	log      *logger.Logger
	notifier *telegram.Notifier
	webhook  httpclient.HTTPClient
}

func NewAlertService(
	cfg *config.Config,
	log *logger.Logger,
	notifier *telegram.Notifier,
	webhook httpclient.HTTPClient,
) AlertService {
	return &alertService{
		cfg:      cfg,
		log:      log,
		notifier: notifier,
		webhook:  webhook,
	}
}

func (s *alertService) NotifySignal(ctx context.Context, pattern *model.PatternResult) {
	if !pattern.HasSignal() {
		return
	}

	if s.notifier.Enabled() {
		if err := s.notifier.Send(ctx, s.formatMessage(pattern)); err != nil {
			s.log.Error("Failed to send telegram signal alert",
				logger.ErrorField(err),
				logger.StringField("symbol", pattern.Symbol),
			)
		}
	}

	if s.webhook != nil && s.cfg.Webhook.SignalURL != "" {
		payload := map[string]interface{}{
			"symbol":            pattern.Symbol,
			"direction":         *pattern.SignalDirection,
			"expected_return":   *pattern.ExpectedReturn,
			"signal_confidence": *pattern.SignalConfidence,
			"pattern_type":      pattern.PatternType,
			"analyzed_at":       pattern.AnalyzedAt,
		}
		resp, err := s.webhook.Post(ctx, "", payload, nil, nil)
		if err != nil {
			s.log.Error("Failed to post signal webhook",
				logger.ErrorField(err),
				logger.StringField("symbol", pattern.Symbol),
			)
		} else if resp.StatusCode >= 400 {
			s.log.Warn("Signal webhook rejected payload",
				logger.IntField("status_code", resp.StatusCode),
				logger.StringField("symbol", pattern.Symbol),
			)
		}
	}
}

func (s *alertService) formatMessage(pattern *model.PatternResult) string {
	emoji := "📈"
	if *pattern.SignalDirection == "SELL" {
		emoji = "📉"
	}

	return fmt.Sprintf(
		"%s *%s Signal: %s*\n\nExpected return: %s\nConfidence: %s\nMentions: %d over %d days\nAnalysis date: %s",
		emoji,
		utils.EscapeMarkdownV2(*pattern.SignalDirection),
		utils.EscapeMarkdownV2(pattern.Symbol),
		utils.EscapeMarkdownV2(utils.FormatPercentage(*pattern.ExpectedReturn*100)),
		utils.EscapeMarkdownV2(fmt.Sprintf("%.0f%%", *pattern.SignalConfidence*100)),
		pattern.MentionCount,
		pattern.WindowDays,
		utils.EscapeMarkdownV2(utils.PrettyDate(pattern.AnalysisDate)),
	)
}
