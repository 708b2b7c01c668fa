// Package dialog предоставляет модальные GUI диалоги.
package dialog

import (
	"log/slog"

	"github.com/ncruces/zenity"

	"voxbar/internal/i18n"
)

// ShowError показывает сообщение об ошибке. Блокирует до закрытия окна.
func ShowError(title, message string) {
	if err := zenity.Error(message, zenity.Title(title)); err != nil {
		slog.Debug("диалог не показан", "error", err)
	}
}

// PermissionDenied объясняет, что ОС запретила синтетический ввод.
func PermissionDenied() {
	ShowError(i18n.T("dialog_permission_title"), i18n.T("dialog_permission_body"))
}
