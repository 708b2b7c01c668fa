//go:build linux

package system

import (
	"golang.design/x/hotkey"

	vk "voxbar/internal/hotkey"
)

// modifierMap маппинг Modifier -> hotkey.Modifier для Linux
var modifierMap = map[vk.Modifier]hotkey.Modifier{
	vk.ModCtrl:  hotkey.ModCtrl,
	vk.ModShift: hotkey.ModShift,
	vk.ModAlt:   hotkey.Mod1, // Alt = Mod1 на X11
	vk.ModSuper: hotkey.Mod4, // Super/Win = Mod4 на X11
}
