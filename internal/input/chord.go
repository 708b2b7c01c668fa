//go:build linux || windows

package input

import "github.com/micmonay/keybd_event"

// chord - часть keybd_event.KeyBonding, которой пользуется Paster.
type chord interface {
	Clear()
	HasCTRL(bool)
	HasSHIFT(bool)
	HasALT(bool)
	SetKeys(...int)
	Release() error
	Launching() error
}

// sendPaste отпускает Shift и Alt, которые пользователь ещё держит после
// Shift+Alt+V, и только потом нажимает Ctrl+V. Иначе приложение получит
// Ctrl+Shift+Alt+V.
func sendPaste(kb chord) error {
	kb.Clear()
	kb.HasSHIFT(true)
	kb.HasALT(true)
	if err := kb.Release(); err != nil {
		return err
	}

	kb.Clear()
	kb.HasCTRL(true)
	kb.SetKeys(keybd_event.VK_V)
	return kb.Launching()
}
