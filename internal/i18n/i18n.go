// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_name":    "Voxbar",
		"app_tooltip": "Voxbar - push-to-talk dictation",

		// Tray menu
		"tray_show":      "Show Window",
		"tray_show_hint": "Open the main window",
		"tray_quit":      "Quit",
		"tray_quit_hint": "Exit the application",
		"tray_recording": "Recording...",
		"tray_ready":     "Ready",

		// Notifications
		"notify_error":                "Error",
		"notify_ready":                "Voxbar is running in the tray",
		"notify_shortcut_unavailable": "Shortcut %s is used by another application",
		"notify_paste_failed":         "Could not paste: %s",

		// Dialogs
		"dialog_permission_title": "Paste is not allowed",
		"dialog_permission_body":  "The system refused synthetic keyboard input. Grant Voxbar the accessibility / input permission and try again.",

		// Main window
		"main_title":          "Voxbar",
		"main_status_idle":    "Ready",
		"main_status_talking": "Listening...",
		"main_status_pasted":  "Paste sent",
		"main_shortcuts":      "Shortcuts",
		"main_shortcut_hold":  "%s: hold to talk",
		"main_shortcut_press": "%s: paste",
		"main_shortcut_inert": "(unavailable)",
		"main_paste":          "Paste",
		"main_hide":           "Hide",

		// Widget
		"widget_idle":      "Hold %s to talk",
		"widget_recording": "Recording",
	},
	RU: {
		// App
		"app_name":    "Voxbar",
		"app_tooltip": "Voxbar - голосовой ввод",

		// Tray menu
		"tray_show":      "Показать окно",
		"tray_show_hint": "Открыть главное окно",
		"tray_quit":      "Выход",
		"tray_quit_hint": "Закрыть приложение",
		"tray_recording": "Запись...",
		"tray_ready":     "Готов к работе",

		// Notifications
		"notify_error":                "Ошибка",
		"notify_ready":                "Voxbar работает в трее",
		"notify_shortcut_unavailable": "Комбинация %s занята другим приложением",
		"notify_paste_failed":         "Не удалось вставить: %s",

		// Dialogs
		"dialog_permission_title": "Вставка запрещена",
		"dialog_permission_body":  "Система отклонила синтетический ввод с клавиатуры. Выдайте Voxbar разрешение на управление вводом и повторите.",

		// Main window
		"main_title":          "Voxbar",
		"main_status_idle":    "Готов к работе",
		"main_status_talking": "Слушаю...",
		"main_status_pasted":  "Вставка отправлена",
		"main_shortcuts":      "Горячие клавиши",
		"main_shortcut_hold":  "%s: удерживать для записи",
		"main_shortcut_press": "%s: вставка",
		"main_shortcut_inert": "(недоступна)",
		"main_paste":          "Вставить",
		"main_hide":           "Скрыть",

		// Widget
		"widget_idle":      "Удерживайте %s для записи",
		"widget_recording": "Запись",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to English, then to the key itself
	if s, ok := translations[EN][key]; ok {
		return s
	}
	return key
}

// SetLanguage sets the current UI language. Unknown languages are ignored.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; ok {
		current = lang
	}
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}
