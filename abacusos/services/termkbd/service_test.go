package termkbd

import (
	"bytes"
	"testing"

	"abacus/hal"
)

func TestVT100FromKey(t *testing.T) {
	tcs := []struct {
		name string
		ev   hal.KeyEvent
		want string
	}{
		{"rune", hal.KeyEvent{Rune: '7'}, "7"},
		{"enter", hal.KeyEvent{Code: hal.KeyEnter}, "\r"},
		{"backspace", hal.KeyEvent{Code: hal.KeyBackspace}, "\x7f"},
		{"up", hal.KeyEvent{Code: hal.KeyUp}, "\x1b[A"},
		{"left", hal.KeyEvent{Code: hal.KeyLeft}, "\x1b[D"},
		{"delete", hal.KeyEvent{Code: hal.KeyDelete}, "\x1b[3~"},
		{"shift delete", hal.KeyEvent{Code: hal.KeyDelete, Shift: true}, "\x1b[3;2~"},
		{"page up", hal.KeyEvent{Code: hal.KeyPageUp}, "\x1b[5~"},
		{"page down", hal.KeyEvent{Code: hal.KeyPageDown}, "\x1b[6~"},
		{"f1", hal.KeyEvent{Code: hal.KeyF1}, "\x1b[11~"},
		{"f4", hal.KeyEvent{Code: hal.KeyF4}, "\x1b[14~"},
		{"unmapped", hal.KeyEvent{Code: hal.KeyHome}, ""},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := vt100FromKey(tc.ev)
			if !bytes.Equal(got, []byte(tc.want)) {
				t.Fatalf("vt100FromKey(%+v) = %q, want %q", tc.ev, got, tc.want)
			}
		})
	}
}

func TestRepeatableKey(t *testing.T) {
	if !repeatableKey(hal.KeyEvent{Code: hal.KeyLeft}, []byte("\x1b[D")) {
		t.Fatal("arrow keys must repeat")
	}
	if repeatableKey(hal.KeyEvent{Code: hal.KeyEnter}, []byte("\r")) {
		t.Fatal("enter must not repeat")
	}
	if repeatableKey(hal.KeyEvent{Code: hal.KeyLeft}, nil) {
		t.Fatal("keys without encoding must not repeat")
	}
}
