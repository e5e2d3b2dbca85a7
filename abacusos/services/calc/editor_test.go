package calc

import (
	"strings"
	"testing"

	"abacus/abacusos/limits"
)

func TestEditorInsertAndMove(t *testing.T) {
	var e editor
	for _, c := range []byte("125") {
		e.insert(c)
	}
	e.left()
	e.insert('.')
	if got := string(e.text()); got != "12.5" {
		t.Fatalf("text = %q, want %q", got, "12.5")
	}
	if e.cursor != 3 {
		t.Errorf("cursor = %d, want 3", e.cursor)
	}
	e.right()
	e.backspace()
	if got := string(e.text()); got != "12." {
		t.Errorf("text = %q, want %q", got, "12.")
	}
}

func TestEditorDeleteForward(t *testing.T) {
	var e editor
	e.setText([]byte("345"))
	e.left()
	e.left()
	if !e.deleteForward() {
		t.Fatal("deleteForward failed")
	}
	if got := string(e.text()); got != "35" {
		t.Errorf("text = %q, want %q", got, "35")
	}
	e.right()
	if e.deleteForward() {
		t.Error("deleteForward at end must fail")
	}
}

func TestEditorBounds(t *testing.T) {
	var e editor
	if e.backspace() {
		t.Error("backspace on empty must fail")
	}
	e.left()
	e.right()
	if e.cursor != 0 || e.n != 0 {
		t.Fatalf("moves on empty mutated state: cursor=%d n=%d", e.cursor, e.n)
	}
	for i := 0; i < limits.InputCap; i++ {
		if !e.insert('1') {
			t.Fatalf("insert %d rejected below capacity", i)
		}
	}
	if e.insert('2') {
		t.Error("insert past capacity must be discarded")
	}
	if e.n != limits.InputCap {
		t.Errorf("n = %d, want %d", e.n, limits.InputCap)
	}
}

func TestEditorSetTextTruncates(t *testing.T) {
	var e editor
	e.setText([]byte(strings.Repeat("9", limits.InputCap+5)))
	if e.n != limits.InputCap || e.cursor != limits.InputCap {
		t.Fatalf("n=%d cursor=%d, want %d", e.n, e.cursor, limits.InputCap)
	}
}

func TestHistoryBrowse(t *testing.T) {
	h := newHistory()
	if _, ok := h.up(); ok {
		t.Fatal("up on empty history must fail")
	}
	if _, ok := h.down(); ok {
		t.Fatal("down while not browsing must fail")
	}

	h.push([]byte("1"))
	h.push([]byte("2"))
	h.push([]byte("3"))

	line, _ := h.up()
	if string(line) != "3" {
		t.Fatalf("first up = %q, want 3", line)
	}
	line, _ = h.up()
	line, _ = h.up()
	if string(line) != "1" {
		t.Fatalf("up to oldest = %q, want 1", line)
	}
	// Clamps at the oldest, no wrap.
	line, _ = h.up()
	if string(line) != "1" {
		t.Fatalf("up past oldest = %q, want 1", line)
	}

	line, _ = h.down()
	if string(line) != "2" {
		t.Fatalf("down = %q, want 2", line)
	}
	h.down()
	line, ok := h.down()
	if !ok || len(line) != 0 {
		t.Fatalf("down past newest: got %q ok=%v, want empty line", line, ok)
	}
	if _, ok := h.down(); ok {
		t.Fatal("second down past newest must fail")
	}
}

func TestHistoryRingEviction(t *testing.T) {
	h := newHistory()
	for i := 0; i < limits.HistoryCap+2; i++ {
		h.push([]byte{'a' + byte(i)})
	}
	if h.len() != limits.HistoryCap {
		t.Fatalf("len = %d, want %d", h.len(), limits.HistoryCap)
	}
	for i := 0; i < limits.HistoryCap; i++ {
		h.up()
	}
	line, _ := h.up()
	want := string([]byte{'a' + 2}) // two oldest evicted
	if string(line) != want {
		t.Errorf("oldest = %q, want %q", line, want)
	}
}

func TestHistoryPushResetsBrowse(t *testing.T) {
	h := newHistory()
	h.push([]byte("10"))
	h.up()
	h.push([]byte("20"))
	line, _ := h.up()
	if string(line) != "20" {
		t.Errorf("up after push = %q, want 20", line)
	}
}
