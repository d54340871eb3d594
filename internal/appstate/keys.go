package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut identifies a key combination. Rune is matched in lower case;
// a zero Rune matches by Code instead.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// keymap maps shortcuts to action names.
type keymap map[KeyShortcut]string

func (k keymap) bind(action string, keys KeyboardShortcuts) {
	if keys == nil {
		return
	}
	for _, sc := range keys.KeyboardShortcuts() {
		if sc.Rune != 0 {
			sc.Rune = unicode.ToLower(sc.Rune)
			sc.Code = key.CodeUnknown
		}
		k[sc] = action
	}
}

// lookup resolves e to an action. Runes are tried with the exact modifiers
// first and then without shift, so that '[' and 'Q' match regardless of the
// keyboard layout; keys without a rune are matched by code.
func (k keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers &^ key.ModMeta
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		if a, ok := k[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return a, true
		}
		if a, ok := k[KeyShortcut{Rune: r, Modifiers: mods &^ key.ModShift}]; ok {
			return a, true
		}
	}
	if e.Code != key.CodeUnknown {
		if a, ok := k[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok {
			return a, true
		}
	}
	return "", false
}

// defaultKeymap returns the bindings of the window actions.
func defaultKeymap() keymap {
	k := keymap{}
	k.bind("pen", shortcutList{{Rune: 'p'}, {Rune: 'b'}})
	k.bind("rect", shortcutList{{Rune: 'x'}, {Rune: 'r'}})
	k.bind("oval", shortcutList{{Rune: 'o'}})
	k.bind("eraser", shortcutList{{Rune: 'e'}})
	k.bind("undo", shortcutList{
		{Rune: 'z', Modifiers: key.ModControl},
		{Code: key.CodeZ, Modifiers: key.ModControl},
	})
	k.bind("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Code: key.CodeY, Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
		{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift},
	})
	k.bind("clear", shortcutList{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}})
	k.bind("thinner", shortcutList{{Rune: '['}, {Rune: '-'}})
	k.bind("thicker", shortcutList{{Rune: ']'}, {Rune: '+'}, {Rune: '='}})
	k.bind("save", shortcutList{
		{Rune: 's', Modifiers: key.ModControl},
		{Code: key.CodeS, Modifiers: key.ModControl},
	})
	k.bind("copy", shortcutList{
		{Rune: 'c', Modifiers: key.ModControl},
		{Code: key.CodeC, Modifiers: key.ModControl},
	})
	k.bind("quit", shortcutList{{Rune: 'q'}})
	return k
}
