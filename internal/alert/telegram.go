package alert

import (
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"hrfx-gateway/pkg/workerpool"
)

// Notifier pushes short ops alerts to a Telegram chat. A nil Notifier is a
// valid no-op, so callers never have to check whether alerting is configured.
type Notifier struct {
	bot    *telebot.Bot
	chatID int64
	pool   *workerpool.WorkerPool
	log    logrus.FieldLogger
}

// NewNotifier returns nil (alerting disabled) when token or chatID is unset.
func NewNotifier(token string, chatID int64, pool *workerpool.WorkerPool, log logrus.FieldLogger) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: bot, chatID: chatID, pool: pool, log: log}, nil
}

// Notify dispatches the message fire-and-forget. Delivery failure is logged,
// never surfaced to the pipeline that raised the alert.
func (n *Notifier) Notify(message string) {
	if n == nil {
		return
	}
	n.pool.Submit(func() {
		if _, err := n.bot.Send(telebot.ChatID(n.chatID), message); err != nil {
			n.log.WithError(err).Warn("telegram alert failed")
		}
	})
}
