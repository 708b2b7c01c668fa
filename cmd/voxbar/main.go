// Voxbar - резидентное приложение с глобальными горячими клавишами.
//
// Работает в системном трее. Ctrl+Shift+Space (удерживать) - push-to-talk,
// Shift+Alt+V - вставка в активное окно.
package main

import (
	"log/slog"
	"os"

	"voxbar/internal/app"
	"voxbar/internal/bridge"
	"voxbar/internal/config"
	"voxbar/internal/dialog"
	"voxbar/internal/hotkey/system"
	"voxbar/internal/i18n"
	"voxbar/internal/input"
	"voxbar/internal/notify"
	"voxbar/internal/shortcut"
	"voxbar/internal/tray"
	"voxbar/internal/ui"
	"voxbar/internal/window"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("конфигурация не загружена, используются значения по умолчанию", "error", err)
		cfg = config.Default()
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("Voxbar запускается", "version", Version)

	i18n.SetLanguage(i18n.Language(cfg.UILanguage))

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	system.RunOnMainThread(func() { run(cfg) })
}

func run(cfg *config.Config) {
	paster, err := input.New()
	if err != nil {
		slog.Warn("синтетический ввод недоступен", "error", err)
	}

	bindings := shortcut.DefaultBindings()
	palette := ui.DefaultPalette()

	var a *app.App

	mainView := ui.NewMainView(palette,
		func() {
			if err := a.PasteTranscript(); err != nil {
				slog.Debug("вставка из окна не удалась", "error", err)
			}
		},
		func() {
			if _, err := a.CloseWindow(window.Main); err != nil {
				slog.Debug("окно не скрыто", "error", err)
			}
		},
	)
	mainSurface := ui.NewSurface(ui.Options{
		Title:  ui.MainTitle,
		Width:  cfg.MainWindow.Width,
		Height: cfg.MainWindow.Height,
	}, mainView)

	widgetView := ui.NewWidgetView(palette, holdCombination(bindings))
	widgetSurface := ui.NewSurface(ui.Options{
		Title:   ui.WidgetTitle,
		Width:   cfg.Widget.Width,
		Height:  cfg.Widget.Height,
		Refresh: ui.WidgetRefresh,
	}, widgetView)

	windows := window.NewController(os.Exit)
	windows.SetBottomMargin(cfg.Widget.BottomMargin)

	deps := app.Deps{
		Grabber:  system.New(),
		Bindings: bindings,
		Paster:   paster,
		Windows:  windows,
		Surfaces: []app.Surface{
			{Name: window.Main, Handle: mainSurface},
			{Name: window.Widget, Handle: widgetSurface},
		},
		Notifier:         notify.New(cfg.Notifications),
		Tray:             tray.New(),
		PermissionDenied: dialog.PermissionDenied,
		OnRegistered: func(statuses []shortcut.Status) {
			mainView.SetStatuses(statuses)
			mainSurface.Invalidate()
		},
	}

	if cfg.Bridge.Enabled {
		deps.Bridge = bridge.NewHub(bridge.Options{
			Addr:           cfg.Bridge.Addr,
			AllowedOrigins: cfg.Bridge.AllowedOrigins,
		}, commander{&a})
	}

	a = app.New(deps)

	mainSurface.OnCloseRequested(func() { closeWindow(a, window.Main) })
	widgetSurface.OnCloseRequested(func() { closeWindow(a, window.Widget) })

	mainEvents, _ := a.Bus().Subscribe(16)
	go ui.Follow(mainEvents, mainView, mainSurface)
	widgetEvents, _ := a.Bus().Subscribe(16)
	go ui.Follow(widgetEvents, widgetView, widgetSurface)

	slog.Info("приложение запущено", "shortcuts", len(bindings))
	a.Run()
}

func closeWindow(a *app.App, name string) {
	if _, err := a.CloseWindow(name); err != nil {
		slog.Debug("запрос на закрытие не обработан", "window", name, "error", err)
	}
}

// commander откладывает обращение к App до его создания.
type commander struct {
	app **app.App
}

func (c commander) PasteTranscript() error { return (*c.app).PasteTranscript() }

func (c commander) ShowWindow(name string) error { return (*c.app).ShowWindow(name) }

func (c commander) CloseWindow(name string) (bool, error) { return (*c.app).CloseWindow(name) }

func holdCombination(bindings []shortcut.Binding) string {
	for _, b := range bindings {
		if b.Mode == shortcut.Hold {
			return b.Combination.String()
		}
	}
	return ""
}
