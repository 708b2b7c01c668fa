package hotkey

import "strings"

// Modifier - набор модификаторов комбинации (битовая маска).
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModSuper // Win/Cmd
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModShift, "shift"},
	{ModAlt, "alt"},
	{ModSuper, "super"},
}

// Has сообщает, входит ли m в набор.
func (s Modifier) Has(m Modifier) bool {
	return s&m == m
}

// Key представляет основную клавишу комбинации.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyA      Key = "a"
	KeyB      Key = "b"
	KeyC      Key = "c"
	KeyD      Key = "d"
	KeyE      Key = "e"
	KeyF      Key = "f"
	KeyG      Key = "g"
	KeyH      Key = "h"
	KeyI      Key = "i"
	KeyJ      Key = "j"
	KeyK      Key = "k"
	KeyL      Key = "l"
	KeyM      Key = "m"
	KeyN      Key = "n"
	KeyO      Key = "o"
	KeyP      Key = "p"
	KeyQ      Key = "q"
	KeyR      Key = "r"
	KeyS      Key = "s"
	KeyT      Key = "t"
	KeyU      Key = "u"
	KeyV      Key = "v"
	KeyW      Key = "w"
	KeyX      Key = "x"
	KeyY      Key = "y"
	KeyZ      Key = "z"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF3     Key = "f3"
	KeyF4     Key = "f4"
	KeyF5     Key = "f5"
	KeyF6     Key = "f6"
	KeyF7     Key = "f7"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// Combination - модификаторы плюс одна основная клавиша.
// Значение сравнимо, поэтому порядок модификаторов не важен и его можно
// использовать как ключ map.
type Combination struct {
	Mods Modifier
	Key  Key
}

// Combo собирает комбинацию из списка модификаторов и клавиши.
func Combo(key Key, mods ...Modifier) Combination {
	var set Modifier
	for _, m := range mods {
		set |= m
	}
	return Combination{Mods: set, Key: key}
}

// String возвращает строковое представление, например "ctrl+shift+space".
func (c Combination) String() string {
	parts := make([]string, 0, len(modifierNames)+1)
	for _, m := range modifierNames {
		if c.Mods.Has(m.mod) {
			parts = append(parts, m.name)
		}
	}
	parts = append(parts, string(c.Key))
	return strings.Join(parts, "+")
}

// Edge - направление перехода клавиши.
type Edge int

const (
	Pressed Edge = iota
	Released
)

func (e Edge) String() string {
	if e == Released {
		return "released"
	}
	return "pressed"
}

// Transition - сырое событие от ОС: комбинация и направление.
type Transition struct {
	Combination Combination
	Edge        Edge
}
