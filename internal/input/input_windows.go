//go:build windows

package input

import (
	"sync"

	"github.com/micmonay/keybd_event"
)

type windowsPaster struct {
	mu sync.Mutex
	kb keybd_event.KeyBonding
}

func newPaster() (Paster, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, unavailable(err)
	}
	return &windowsPaster{kb: kb}, nil
}

func (p *windowsPaster) Paste() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := sendPaste(&p.kb); err != nil {
		return unavailable(err)
	}
	return nil
}
