// Package notify предоставляет системные уведомления.
package notify

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"

	"voxbar/internal/i18n"
)

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
	send    func(title, message string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Ready сообщает, что приложение работает в трее.
func (n *Notifier) Ready() {
	n.notify("", i18n.T("notify_ready"))
}

// ShortcutUnavailable сообщает, что комбинацию держит другой процесс.
func (n *Notifier) ShortcutUnavailable(combination string) {
	n.notify(i18n.T("notify_error"), fmt.Sprintf(i18n.T("notify_shortcut_unavailable"), combination))
}

// PasteFailed сообщает об ошибке вставки.
func (n *Notifier) PasteFailed(err error) {
	msg := err.Error()
	if len(msg) > 100 {
		msg = msg[:100] + "..."
	}
	n.notify(i18n.T("notify_error"), fmt.Sprintf(i18n.T("notify_paste_failed"), msg))
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	appName := i18n.T("app_name")
	if title != "" {
		title = appName + ": " + title
	} else {
		title = appName
	}
	// Ошибки уведомлений не критичны
	if err := n.send(title, message); err != nil {
		slog.Debug("уведомление не отправлено", "error", err)
	}
}
