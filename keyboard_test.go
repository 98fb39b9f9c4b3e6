package main

import "testing"

func TestKeyboardLowercaseMakeAndBreak(t *testing.T) {
	k := NewKeyboard(nil)
	k.PutKey('a')

	want := []byte{0x1C, 0xF0, 0x1C}
	for i, w := range want {
		got, ok := k.Input(kbdPortBase + 0)
		if !ok || got != w {
			t.Fatalf("byte %d = (0x%02X,%v), want (0x%02X,true)", i, got, ok, w)
		}
	}
}

func TestKeyboardShiftedUppercasePrefix(t *testing.T) {
	k := NewKeyboard(nil)
	k.PutKey('A')

	want := []byte{0x12, 0x1C, 0xF0, 0x12, 0xF0, 0x1C}
	for i, w := range want {
		got, _ := k.Input(kbdPortBase + 0)
		if got != w {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X", i, got, w)
		}
	}
}

func TestKeyboardUnknownCharIsIgnored(t *testing.T) {
	k := NewKeyboard(nil)
	k.PutKey(0xFF)
	if _, ok := k.Input(kbdPortBase + 0); !ok {
		t.Fatalf("expected Input to still claim the port")
	}
	if got, _ := k.Input(kbdPortBase + 0); got != 0x00 {
		t.Fatalf("expected empty queue to read 0x00, got 0x%02X", got)
	}
}

func TestKeyboardCommandProtocol(t *testing.T) {
	k := NewKeyboard(nil)
	k.PutKey('a')

	k.Output(kbdPortBase+2, 0x01) // cmdActive = true
	if got, _ := k.Input(kbdPortBase + 0); got != 0x00 {
		t.Fatalf("scancode read while cmdActive should be 0x00, got 0x%02X", got)
	}

	k.Output(kbdPortBase+1, 0xED) // deliver command byte, expect ack
	if k.ack != 0x01 {
		t.Fatalf("expected ack byte set after command delivered while active")
	}
	if got, _ := k.Input(kbdPortBase + 3); got != 0x01 {
		t.Fatalf("ack port = 0x%02X, want 0x01", got)
	}

	k.Output(kbdPortBase+2, 0x00) // cmdActive = false
	if got, _ := k.Input(kbdPortBase + 0); got != 0x1C {
		t.Fatalf("expected queued scancode to resume draining, got 0x%02X", got)
	}
}

func TestKeyboardPortOutsideRangeUnclaimed(t *testing.T) {
	k := NewKeyboard(nil)
	if _, ok := k.Input(0x9999); ok {
		t.Fatalf("expected unrelated port to be unclaimed")
	}
	if k.Output(0x9999, 0) {
		t.Fatalf("expected unrelated port write to be unclaimed")
	}
}
