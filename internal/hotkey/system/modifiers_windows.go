//go:build windows

package system

import (
	"golang.design/x/hotkey"

	vk "voxbar/internal/hotkey"
)

// modifierMap маппинг Modifier -> hotkey.Modifier для Windows
var modifierMap = map[vk.Modifier]hotkey.Modifier{
	vk.ModCtrl:  hotkey.ModCtrl,
	vk.ModShift: hotkey.ModShift,
	vk.ModAlt:   hotkey.ModAlt,
	vk.ModSuper: hotkey.ModWin,
}
