package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AdminNotifier mirrors outbound notices into the operators' chat so a
// running simulation can be watched without tailing logs.
type AdminNotifier struct {
	api       *tgbotapi.BotAPI
	adminChat int64
	log       *slog.Logger
}

func NewAdminNotifier(api *tgbotapi.BotAPI, adminChat int64, log *slog.Logger) *AdminNotifier {
	return &AdminNotifier{api: api, adminChat: adminChat, log: log}
}

func (n *AdminNotifier) Send(_ context.Context, recipient, subject, body string) bool {
	msg := tgbotapi.NewMessage(n.adminChat, fmt.Sprintf("%s → %s\n%s", subject, recipient, body))
	if _, err := n.api.Send(msg); err != nil {
		n.log.Error("send failed", "err", err)
		return false
	}
	return true
}
