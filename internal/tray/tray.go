// Package tray предоставляет системный трей с меню.
package tray

import (
	"log/slog"

	"github.com/getlantern/systray"

	"voxbar/internal/i18n"
	"voxbar/internal/icon"
	"voxbar/internal/window"
)

// Идентификаторы пунктов меню.
const (
	ItemShow = "show"
	ItemQuit = "quit"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StateRecording
)

// Kind различает источник сообщения трея.
type Kind int

const (
	// MenuSelect - выбран пункт меню.
	MenuSelect Kind = iota
	// Click - клик по самой иконке.
	Click
)

// Message - событие трея, доставляемое диспетчеру.
type Message struct {
	Kind Kind
	Item string
}

// WindowOps - операции над окнами, нужные трею.
type WindowOps interface {
	Quit()
	ShowAndFocus(name string) error
}

// Route выполняет действие для сообщения трея.
// Неизвестные пункты меню игнорируются.
func Route(msg Message, ops WindowOps) {
	switch {
	case msg.Kind == Click, msg.Item == ItemShow:
		if err := ops.ShowAndFocus(window.Main); err != nil {
			slog.Warn("не удалось показать окно", "window", window.Main, "error", err)
		}
	case msg.Item == ItemQuit:
		ops.Quit()
	default:
		slog.Debug("неизвестный пункт меню", "item", msg.Item)
	}
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	messages chan Message
	status   *systray.MenuItem
	showBtn  *systray.MenuItem
	quitBtn  *systray.MenuItem
	done     chan struct{}
}

// New создаёт новый Tray.
func New() *Tray {
	return &Tray{
		messages: make(chan Message, 8),
		done:     make(chan struct{}),
	}
}

// Messages возвращает канал событий меню.
func (t *Tray) Messages() <-chan Message {
	return t.messages
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(icon.Idle())
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_tooltip"))

	t.status = systray.AddMenuItem(i18n.T("tray_ready"), "")
	t.status.Disable()

	systray.AddSeparator()

	t.showBtn = systray.AddMenuItem(i18n.T("tray_show"), i18n.T("tray_show_hint"))
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.showBtn.ClickedCh:
			t.post(Message{Kind: MenuSelect, Item: ItemShow})
		case <-t.quitBtn.ClickedCh:
			t.post(Message{Kind: MenuSelect, Item: ItemQuit})
		case <-t.done:
			return
		}
	}
}

func (t *Tray) post(msg Message) {
	select {
	case t.messages <- msg:
	case <-t.done:
	}
}

// SetState устанавливает состояние приложения и обновляет иконку.
func (t *Tray) SetState(state State) {
	appName := i18n.T("app_name")
	switch state {
	case StateIdle:
		systray.SetIcon(icon.Idle())
		systray.SetTooltip(appName + " - " + i18n.T("tray_ready"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_ready"))
		}
	case StateRecording:
		systray.SetIcon(icon.Recording())
		systray.SetTooltip(appName + " - " + i18n.T("tray_recording"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_recording"))
		}
	}
}

func (t *Tray) onExit() {
	select {
	case <-t.done:
	default:
		close(t.done)
	}
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}
