// Package system регистрирует горячие клавиши в ОС через golang.design/x/hotkey.
package system

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	vk "voxbar/internal/hotkey"
)

// unregisterTimeout ограничивает ожидание Unregister: на некоторых
// платформах вызов может зависнуть, если цикл событий ОС уже остановлен.
const unregisterTimeout = 500 * time.Millisecond

// Grabber регистрирует комбинации через golang.design/x/hotkey.
type Grabber struct{}

var _ vk.Grabber = (*Grabber)(nil)

// New создаёт системный Grabber.
func New() *Grabber {
	return &Grabber{}
}

// Grab регистрирует комбинацию. Ошибка означает, что ОС отказала
// (обычно комбинацию уже держит другой процесс).
func (s *Grabber) Grab(c vk.Combination, out chan<- vk.Transition) (vk.Grab, error) {
	key, ok := keyMap[c.Key]
	if !ok {
		return nil, fmt.Errorf("hotkey: неизвестная клавиша %q", c.Key)
	}

	hk := hotkey.New(toModifiers(c.Mods), key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("hotkey: регистрация %s: %w", c, err)
	}

	g := &grab{
		combo:  c,
		hk:     hk,
		stopCh: make(chan struct{}),
	}
	go vk.Pump(c, hk.Keydown(), hk.Keyup(), out, g.stopCh)

	slog.Debug("горячая клавиша зарегистрирована", "combination", c.String())
	return g, nil
}

type grab struct {
	once   sync.Once
	combo  vk.Combination
	hk     *hotkey.Hotkey
	stopCh chan struct{}
	err    error
}

// Release останавливает listener и отменяет регистрацию. Повторный вызов
// возвращает результат первого.
func (g *grab) Release() error {
	g.once.Do(func() {
		close(g.stopCh)

		done := make(chan error, 1)
		go func() {
			done <- g.hk.Unregister()
		}()
		select {
		case g.err = <-done:
		case <-time.After(unregisterTimeout):
			slog.Warn("таймаут отмены регистрации горячей клавиши", "combination", g.combo.String())
		}
	})
	return g.err
}

func toModifiers(set vk.Modifier) []hotkey.Modifier {
	order := []vk.Modifier{vk.ModCtrl, vk.ModShift, vk.ModAlt, vk.ModSuper}
	mods := make([]hotkey.Modifier, 0, len(order))
	for _, m := range order {
		if !set.Has(m) {
			continue
		}
		if mod, ok := modifierMap[m]; ok {
			mods = append(mods, mod)
		}
	}
	return mods
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// modifierMap определён в файлах modifiers_{linux,darwin,windows}.go.

// keyMap маппинг Key -> hotkey.Key
var keyMap = map[vk.Key]hotkey.Key{
	vk.KeySpace:  hotkey.KeySpace,
	vk.KeyReturn: hotkey.KeyReturn,
	vk.KeyTab:    hotkey.KeyTab,
	vk.KeyA:      hotkey.KeyA,
	vk.KeyB:      hotkey.KeyB,
	vk.KeyC:      hotkey.KeyC,
	vk.KeyD:      hotkey.KeyD,
	vk.KeyE:      hotkey.KeyE,
	vk.KeyF:      hotkey.KeyF,
	vk.KeyG:      hotkey.KeyG,
	vk.KeyH:      hotkey.KeyH,
	vk.KeyI:      hotkey.KeyI,
	vk.KeyJ:      hotkey.KeyJ,
	vk.KeyK:      hotkey.KeyK,
	vk.KeyL:      hotkey.KeyL,
	vk.KeyM:      hotkey.KeyM,
	vk.KeyN:      hotkey.KeyN,
	vk.KeyO:      hotkey.KeyO,
	vk.KeyP:      hotkey.KeyP,
	vk.KeyQ:      hotkey.KeyQ,
	vk.KeyR:      hotkey.KeyR,
	vk.KeyS:      hotkey.KeyS,
	vk.KeyT:      hotkey.KeyT,
	vk.KeyU:      hotkey.KeyU,
	vk.KeyV:      hotkey.KeyV,
	vk.KeyW:      hotkey.KeyW,
	vk.KeyX:      hotkey.KeyX,
	vk.KeyY:      hotkey.KeyY,
	vk.KeyZ:      hotkey.KeyZ,
	vk.KeyF1:     hotkey.KeyF1,
	vk.KeyF2:     hotkey.KeyF2,
	vk.KeyF3:     hotkey.KeyF3,
	vk.KeyF4:     hotkey.KeyF4,
	vk.KeyF5:     hotkey.KeyF5,
	vk.KeyF6:     hotkey.KeyF6,
	vk.KeyF7:     hotkey.KeyF7,
	vk.KeyF8:     hotkey.KeyF8,
	vk.KeyF9:     hotkey.KeyF9,
	vk.KeyF10:    hotkey.KeyF10,
	vk.KeyF11:    hotkey.KeyF11,
	vk.KeyF12:    hotkey.KeyF12,
}
