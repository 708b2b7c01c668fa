// Package app содержит основную логику приложения.
//
// Диспетчер владеет одним циклом сообщений: переходы горячих клавиш, события
// трея, команды окон и моста, результаты вставки. Окна, трей и мост только
// отправляют сообщения в этот цикл.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"voxbar/internal/hotkey"
	"voxbar/internal/input"
	"voxbar/internal/session"
	"voxbar/internal/shortcut"
	"voxbar/internal/tray"
	"voxbar/internal/window"
)

// ErrStopped возвращается командами после выхода из приложения.
var ErrStopped = errors.New("app: stopped")

// widgetReadyTimeout - сколько ждать первого кадра виджета перед размещением.
const widgetReadyTimeout = time.Second

// Notifier сообщает пользователю о событиях.
type Notifier interface {
	Ready()
	ShortcutUnavailable(combination string)
	PasteFailed(err error)
}

// Tray - системный трей.
type Tray interface {
	Run(onReady func())
	Messages() <-chan tray.Message
	SetState(state tray.State)
	Quit()
}

// Bridge - внешний канал событий и команд.
type Bridge interface {
	Start(ctx context.Context) error
	Stop() error
	Forward(ctx context.Context, events <-chan session.Event)
}

// Surface - окно, открываемое при старте.
type Surface struct {
	Name   string
	Handle window.Handle
}

// Deps содержит зависимости диспетчера.
type Deps struct {
	Grabber  hotkey.Grabber
	Bindings []shortcut.Binding
	// Paster == nil означает, что синтетический ввод недоступен.
	Paster   input.Paster
	Windows  *window.Controller
	Surfaces []Surface
	Notifier Notifier
	Tray     Tray
	// Bridge == nil отключает мост.
	Bridge Bridge
	// PermissionDenied показывает диалог об отказе в доступе к вводу.
	PermissionDenied func()
	// OnRegistered получает итог регистрации горячих клавиш.
	OnRegistered func([]shortcut.Status)
}

type commandKind int

const (
	cmdPaste commandKind = iota
	cmdShow
	cmdClose
)

type command struct {
	kind   commandKind
	window string
	reply  chan commandResult
}

type commandResult struct {
	prevented bool
	err       error
}

type pasteResult struct {
	err   error
	reply chan commandResult
}

// App представляет главное приложение.
type App struct {
	deps     Deps
	registry *shortcut.Registry
	bus      *session.Bus
	windows  *window.Controller
	paster   input.Paster

	commands  chan command
	pasteDone chan pasteResult

	ctx      context.Context
	cancel   context.CancelFunc
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	// Поля ниже принадлежат циклу сообщений.
	permissionShown bool
}

// New создаёт новое приложение.
func New(deps Deps) *App {
	if deps.Bindings == nil {
		deps.Bindings = shortcut.DefaultBindings()
	}
	if deps.Windows == nil {
		deps.Windows = window.NewController(nil)
	}
	paster := deps.Paster
	if paster == nil {
		paster = unavailablePaster{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		deps:      deps,
		registry:  shortcut.NewRegistry(deps.Grabber),
		bus:       session.NewBus(),
		windows:   deps.Windows,
		paster:    paster,
		commands:  make(chan command),
		pasteDone: make(chan pasteResult, 1),
		ctx:       ctx,
		cancel:    cancel,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	a.windows.OnQuit(a.shutdown)
	return a
}

// Bus возвращает шину событий сеанса.
func (a *App) Bus() *session.Bus {
	return a.bus
}

// Run запускает приложение. Блокирует до закрытия трея.
func (a *App) Run() {
	a.deps.Tray.Run(func() {
		a.start()
		go a.loop()
	})
}

// start открывает окна, регистрирует горячие клавиши и запускает мост.
func (a *App) start() {
	for _, s := range a.deps.Surfaces {
		if err := a.windows.Open(s.Name, s.Handle); err != nil {
			slog.Error("не удалось открыть окно", "window", s.Name, "error", err)
			continue
		}
		if s.Name == window.Widget {
			go a.placeWidget(s.Handle)
		}
	}

	if err := a.registry.Register(a.deps.Bindings); err != nil {
		slog.Warn("часть горячих клавиш недоступна", "error", err)
	}
	statuses := a.registry.Statuses()
	for _, st := range statuses {
		if !st.Active {
			a.deps.Notifier.ShortcutUnavailable(st.Binding.Combination.String())
		}
	}
	if a.deps.OnRegistered != nil {
		a.deps.OnRegistered(statuses)
	}

	if a.deps.Bridge != nil {
		if err := a.deps.Bridge.Start(a.ctx); err != nil {
			slog.Error("мост не запущен", "error", err)
		} else {
			events, cancel := a.bus.Subscribe(64)
			go func() {
				defer cancel()
				a.deps.Bridge.Forward(a.ctx, events)
			}()
		}
	}

	a.deps.Notifier.Ready()
	slog.Info("приложение запущено")
}

// placeWidget размещает виджет, когда тот сообщит свой размер.
func (a *App) placeWidget(h window.Handle) {
	if w, ok := h.(interface{ WaitReady(time.Duration) bool }); ok {
		if !w.WaitReady(widgetReadyTimeout) {
			slog.Debug("виджет не отрисован вовремя")
		}
	}
	a.windows.PositionWidget(window.Widget)
}

func (a *App) loop() {
	defer close(a.done)
	transitions := a.registry.Transitions()
	messages := a.deps.Tray.Messages()

	for {
		// Выход имеет приоритет над остальными сообщениями.
		select {
		case <-a.stop:
			return
		default:
		}

		select {
		case <-a.stop:
			return
		case t := <-transitions:
			if action, ok := a.registry.Classify(t); ok {
				a.handleAction(action)
			}
		case msg := <-messages:
			tray.Route(msg, a.windows)
		case c := <-a.commands:
			a.handleCommand(c)
		case r := <-a.pasteDone:
			a.reportPaste(r.err)
			if r.reply != nil {
				r.reply <- commandResult{err: r.err}
			}
		}
	}
}

func (a *App) handleAction(action shortcut.Action) {
	slog.Debug("действие", "action", action)
	a.bus.Emit(action)

	switch action {
	case shortcut.PushToTalkStart:
		a.deps.Tray.SetState(tray.StateRecording)
	case shortcut.PushToTalkStop:
		a.deps.Tray.SetState(tray.StateIdle)
	case shortcut.TriggerPaste:
		a.startPaste(nil)
	}
}

func (a *App) handleCommand(c command) {
	if a.windows.Terminated() {
		c.reply <- commandResult{err: ErrStopped}
		return
	}
	switch c.kind {
	case cmdPaste:
		a.startPaste(c.reply)
	case cmdShow:
		c.reply <- commandResult{err: a.windows.ShowAndFocus(c.window)}
	case cmdClose:
		c.reply <- a.closeWindow(c.window)
	}
}

func (a *App) closeWindow(name string) commandResult {
	if _, ok := a.windows.State(name); !ok {
		return commandResult{err: fmt.Errorf("%w: %q", window.ErrWindowNotFound, name)}
	}
	if a.windows.OnCloseRequested(name) {
		return commandResult{prevented: true}
	}
	for _, s := range a.deps.Surfaces {
		if c, ok := s.Handle.(interface{ Close() }); ok && s.Name == name {
			c.Close()
		}
	}
	a.windows.Forget(name)
	return commandResult{}
}

// startPaste запускает вставку, не блокируя цикл.
func (a *App) startPaste(reply chan commandResult) {
	go func() {
		err := a.paster.Paste()
		select {
		case a.pasteDone <- pasteResult{err: err, reply: reply}:
		case <-a.stop:
			if reply != nil {
				reply <- commandResult{err: ErrStopped}
			}
		}
	}()
}

func (a *App) reportPaste(err error) {
	if err == nil {
		slog.Debug("вставка выполнена")
		return
	}
	slog.Warn("ошибка вставки", "error", err)
	a.deps.Notifier.PasteFailed(err)
	if errors.Is(err, input.ErrSimulationUnavailable) && !a.permissionShown && a.deps.PermissionDenied != nil {
		a.permissionShown = true
		go a.deps.PermissionDenied()
	}
}

// PasteTranscript отправляет аккорд вставки окну с фокусом.
func (a *App) PasteTranscript() error {
	return a.submit(command{kind: cmdPaste}).err
}

// ShowWindow показывает окно и передаёт ему фокус.
func (a *App) ShowWindow(name string) error {
	return a.submit(command{kind: cmdShow, window: name}).err
}

// CloseWindow обрабатывает запрос на закрытие окна. prevented == true
// означает, что окно скрыто, а не закрыто.
func (a *App) CloseWindow(name string) (prevented bool, err error) {
	r := a.submit(command{kind: cmdClose, window: name})
	return r.prevented, r.err
}

func (a *App) submit(c command) commandResult {
	c.reply = make(chan commandResult, 1)
	select {
	case a.commands <- c:
	case <-a.stop:
		return commandResult{err: ErrStopped}
	}
	select {
	case r := <-c.reply:
		return r
	case <-a.stop:
		return commandResult{err: ErrStopped}
	}
}

// shutdown выполняется один раз из window.Controller.Quit.
func (a *App) shutdown() {
	a.stopOnce.Do(func() {
		close(a.stop)
		a.cancel()
		if err := a.registry.Close(); err != nil {
			slog.Warn("не удалось освободить горячие клавиши", "error", err)
		}
		if a.deps.Bridge != nil {
			if err := a.deps.Bridge.Stop(); err != nil {
				slog.Warn("мост остановлен с ошибкой", "error", err)
			}
		}
		for _, s := range a.deps.Surfaces {
			if c, ok := s.Handle.(interface{ Close() }); ok {
				c.Close()
			}
		}
		a.deps.Tray.Quit()
		slog.Info("приложение завершено")
	})
}

// Quit завершает приложение.
func (a *App) Quit() {
	a.windows.Quit()
}

type unavailablePaster struct{}

func (unavailablePaster) Paste() error { return input.ErrSimulationUnavailable }
