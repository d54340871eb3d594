package appstate

import (
	"testing"

	"golang.org/x/mobile/event/key"
)

func TestKeymapLookup(t *testing.T) {
	k := defaultKeymap()
	tests := []struct {
		name string
		ev   key.Event
		want string
	}{
		{"pen", key.Event{Rune: 'p', Code: key.CodeP}, "pen"},
		{"upper case", key.Event{Rune: 'E', Code: key.CodeE, Modifiers: key.ModShift}, "eraser"},
		{"undo", key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl}, "undo"},
		{"redo ctrl y", key.Event{Rune: 'y', Code: key.CodeY, Modifiers: key.ModControl}, "redo"},
		{"redo ctrl shift z", key.Event{Rune: 'Z', Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}, "redo"},
		{"control rune by code", key.Event{Rune: 0x13, Code: key.CodeS, Modifiers: key.ModControl}, "save"},
		{"thicker", key.Event{Rune: ']', Code: key.CodeRightSquareBracket}, "thicker"},
		{"plus needs shift", key.Event{Rune: '+', Code: key.CodeEqualSign, Modifiers: key.ModShift}, "thicker"},
		{"delete", key.Event{Rune: -1, Code: key.CodeDeleteForward}, "clear"},
		{"quit", key.Event{Rune: 'q', Code: key.CodeQ}, "quit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := k.lookup(tt.ev)
			if !ok || got != tt.want {
				t.Errorf("lookup = %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestKeymapUnbound(t *testing.T) {
	k := defaultKeymap()
	for _, ev := range []key.Event{
		{Rune: 'p', Code: key.CodeP, Modifiers: key.ModControl},
		{Rune: 'k', Code: key.CodeK},
		{Rune: -1, Code: key.CodeLeftArrow},
	} {
		if a, ok := k.lookup(ev); ok {
			t.Errorf("%v bound to %q", ev, a)
		}
	}
}
