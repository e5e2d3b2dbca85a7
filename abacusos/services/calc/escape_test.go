package calc

import (
	"bytes"
	"testing"

	"abacus/abacusos/limits"
	"abacus/abacusos/proto"
)

// feedAll pushes bytes through the decoder and collects every key event.
func feedAll(d *decoder, in []byte) []proto.Key {
	var keys []proto.Key
	for _, b := range in {
		if key, ok := d.feed(b, 0); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func TestDecoderSequences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []proto.Key
	}{
		{"plain char", "7", []proto.Key{{Kind: proto.KeyChar, Ch: '7'}}},
		{"enter cr", "\r", []proto.Key{{Kind: proto.KeyEnter}}},
		{"enter lf", "\n", []proto.Key{{Kind: proto.KeyEnter}}},
		{"backspace", "\x7f", []proto.Key{{Kind: proto.KeyBackspace}}},
		{"arrow up", "\x1b[A", []proto.Key{{Kind: proto.KeyUp}}},
		{"arrow down", "\x1b[B", []proto.Key{{Kind: proto.KeyDown}}},
		{"arrow right", "\x1b[C", []proto.Key{{Kind: proto.KeyRight}}},
		{"arrow left", "\x1b[D", []proto.Key{{Kind: proto.KeyLeft}}},
		{"delete", "\x1b[3~", []proto.Key{{Kind: proto.KeyDelete}}},
		{"shift delete", "\x1b[3;2~", []proto.Key{{Kind: proto.KeyDropTop}}},
		{"page up", "\x1b[5~", []proto.Key{{Kind: proto.KeyPageUp}}},
		{"page down", "\x1b[6~", []proto.Key{{Kind: proto.KeyPageDown}}},
		{"ss3 prefix", "\x1bO", nil}, // SS3 is not CSI, surfaces as unrecognized
		{"f1 tilde", "\x1b[11~", []proto.Key{{Kind: proto.KeyFunction, Fn: 1}}},
		{"f4 tilde", "\x1b[14~", []proto.Key{{Kind: proto.KeyFunction, Fn: 4}}},
		{"f2 letter", "\x1b[Q", []proto.Key{{Kind: proto.KeyFunction, Fn: 2}}},
		{"mixed", "1+\x1b[A", []proto.Key{
			{Kind: proto.KeyChar, Ch: '1'},
			{Kind: proto.KeyChar, Ch: '+'},
			{Kind: proto.KeyUp},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d decoder
			got := feedAll(&d, []byte(tc.in))
			if tc.want == nil {
				if len(got) != 1 || got[0].Kind != proto.KeyUnrecognized {
					t.Fatalf("want single unrecognized key, got %+v", got)
				}
				return
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d keys, want %d: %+v", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i].Kind != tc.want[i].Kind || got[i].Ch != tc.want[i].Ch || got[i].Fn != tc.want[i].Fn {
					t.Errorf("key %d: got %+v, want %+v", i, got[i], tc.want[i])
				}
			}
			if d.state != decGround {
				t.Errorf("decoder not back at ground: %d", d.state)
			}
		})
	}
}

func TestDecoderUnrecognizedCapturesRaw(t *testing.T) {
	var d decoder
	keys := feedAll(&d, []byte("\x1bx"))
	if len(keys) != 1 || keys[0].Kind != proto.KeyUnrecognized {
		t.Fatalf("got %+v", keys)
	}
	if got := keys[0].RawBytes(); !bytes.Equal(got, []byte("\x1bx")) {
		t.Errorf("raw = %q, want %q", got, "\x1bx")
	}
}

func TestDecoderUnknownFinalByte(t *testing.T) {
	var d decoder
	keys := feedAll(&d, []byte("\x1b[99z"))
	if len(keys) != 1 || keys[0].Kind != proto.KeyUnrecognized {
		t.Fatalf("got %+v", keys)
	}
	// The stream keeps working after the bad sequence.
	keys = feedAll(&d, []byte("5"))
	if len(keys) != 1 || keys[0].Kind != proto.KeyChar || keys[0].Ch != '5' {
		t.Fatalf("after abort: got %+v", keys)
	}
}

func TestDecoderParamOverflow(t *testing.T) {
	var d decoder
	in := append([]byte("\x1b["), bytes.Repeat([]byte("9"), limits.EscParamCap+1)...)
	keys := feedAll(&d, in)
	if len(keys) != 1 || keys[0].Kind != proto.KeyUnrecognized {
		t.Fatalf("got %+v", keys)
	}
	if d.state != decGround {
		t.Errorf("decoder not back at ground")
	}
}

func TestDecoderExpiry(t *testing.T) {
	var d decoder
	if _, ok := d.feed(0x1b, 100); ok {
		t.Fatal("lone ESC should not produce a key")
	}
	if _, ok := d.expire(100 + limits.EscTimeoutTicks - 1); ok {
		t.Fatal("expired early")
	}
	key, ok := d.expire(100 + limits.EscTimeoutTicks)
	if !ok || key.Kind != proto.KeyUnrecognized {
		t.Fatalf("want unrecognized on timeout, got %+v ok=%v", key, ok)
	}
	if _, ok := d.expire(1000); ok {
		t.Fatal("ground state must never expire")
	}
}

func FuzzDecoder(f *testing.F) {
	f.Add([]byte("\x1b[3;2~12.5\r"))
	f.Add([]byte("\x1b\x1b\x1b["))
	f.Add([]byte{0x00, 0xff, 0x1b, '[', ';', ';', '~'})
	f.Fuzz(func(t *testing.T, in []byte) {
		var d decoder
		for i, b := range in {
			d.feed(b, uint64(i))
			if d.nparam > limits.EscParamCap {
				t.Fatalf("param buffer overran: %d", d.nparam)
			}
			if d.nraw > len(d.raw) {
				t.Fatalf("raw capture overran: %d", d.nraw)
			}
		}
		// A printable byte from ground always comes straight back.
		if key, ok := d.expire(uint64(len(in)) + limits.EscTimeoutTicks); ok && key.Kind != proto.KeyUnrecognized {
			t.Fatalf("expire produced %+v", key)
		}
		key, ok := d.feed('5', 0)
		if d.state == decGround && (!ok || key.Kind != proto.KeyChar) {
			t.Fatalf("ground state did not decode a char: %+v ok=%v", key, ok)
		}
	})
}
