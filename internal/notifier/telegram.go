package notifier

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"rugguard/internal/models"
)

// TelegramNotifier pushes an alert to a Telegram chat whenever an analysis
// ends in a SUSPICIOUS verdict.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier creates the notifier. Returns (nil, nil) when the
// token is empty: alerts are an optional feature.
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		logger.Info("Telegram alerts are disabled (token or chat ID not configured)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram alert bot authorized", zap.String("username", botAPI.Self.UserName))

	return &TelegramNotifier{
		api:    botAPI,
		chatID: chatID,
		logger: logger,
	}, nil
}

// NotifySuspicious sends the alert. Failures are logged and swallowed;
// alerting never fails a run.
func (n *TelegramNotifier) NotifySuspicious(result *models.AnalysisResult) {
	if n == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚨 Suspicious account detected: @%s\n", result.Username)
	fmt.Fprintf(&b, "Trust score: %d/100\n", result.TrustScore)
	if len(result.RedFlags) > 0 {
		b.WriteString("Red flags:\n")
		for _, flag := range result.RedFlags {
			fmt.Fprintf(&b, "• %s\n", flag)
		}
	}

	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error("Failed to send Telegram alert",
			zap.String("username", result.Username), zap.Error(err))
		return
	}

	n.logger.Info("Telegram alert sent", zap.String("username", result.Username))
}
