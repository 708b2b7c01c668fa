//go:build linux

package input

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/micmonay/keybd_event"
)

// linuxPaster использует xdotool (X11) или wtype (Wayland). Если инструмента
// нет, пробует виртуальную клавиатуру uinput.
type linuxPaster struct {
	useWayland bool
	lookPath   func(string) (string, error)
	run        func(name string, args ...string) error
	openUinput func() (chord, error)

	once      sync.Once
	mu        sync.Mutex
	uinput    chord
	uinputErr error
}

func newPaster() (Paster, error) {
	return &linuxPaster{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
		lookPath:   exec.LookPath,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
		openUinput: func() (chord, error) {
			kb, err := keybd_event.NewKeyBonding()
			if err != nil {
				return nil, err
			}
			return &kb, nil
		},
	}, nil
}

func (p *linuxPaster) Paste() error {
	name, args := p.command()
	if _, err := p.lookPath(name); err == nil {
		if err := p.run(name, args...); err != nil {
			return fmt.Errorf("input: %s: %w", name, err)
		}
		return nil
	}
	return p.pasteUinput(name)
}

func (p *linuxPaster) command() (string, []string) {
	if p.useWayland {
		return "wtype", []string{"-M", "ctrl", "-k", "v", "-m", "ctrl"}
	}
	// --clearmodifiers отпускает удерживаемые Shift/Alt от горячей клавиши
	return "xdotool", []string{"key", "--clearmodifiers", "ctrl+v"}
}

func (p *linuxPaster) pasteUinput(tool string) error {
	p.once.Do(func() {
		p.uinput, p.uinputErr = p.openUinput()
	})
	if p.uinputErr != nil || p.uinput == nil {
		return unavailable(errors.Join(fmt.Errorf("%s not found", tool), p.uinputErr))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := sendPaste(p.uinput); err != nil {
		return unavailable(err)
	}
	return nil
}
