package main

import (
	"strings"
	"testing"
)

func TestCGACursorRegisterWrites(t *testing.T) {
	c := NewCGA(make([]byte, 0x100000), &strings.Builder{}, nil)

	c.Output(cgaPortBase+4, 0x0F)
	c.Output(cgaPortBase+5, 0x22)
	if c.cursorLow != 0x22 {
		t.Fatalf("cursorLow = 0x%02X, want 0x22", c.cursorLow)
	}

	c.Output(cgaPortBase+4, 0x0E)
	c.Output(cgaPortBase+5, 0x01)
	if c.cursorHigh != 0x01 {
		t.Fatalf("cursorHigh = 0x%02X, want 0x01", c.cursorHigh)
	}
}

func TestCGAInputIsAlwaysZero(t *testing.T) {
	c := NewCGA(make([]byte, 0x100000), &strings.Builder{}, nil)
	got, ok := c.Input(cgaPortBase + 4)
	if !ok || got != 0x00 {
		t.Fatalf("Input = (0x%02X,%v), want (0x00,true)", got, ok)
	}
}

func TestCGAPortOutsideRangeUnclaimed(t *testing.T) {
	c := NewCGA(make([]byte, 0x100000), &strings.Builder{}, nil)
	if c.Output(0x9999, 0) {
		t.Fatalf("expected unrelated port write to be unclaimed")
	}
}

func TestCGAColorWhiteOnBlack(t *testing.T) {
	// Attribute 0x07: white-on-black in standard CGA BGR attribute encoding.
	fg, bg, blink := cgaColor(0x07)
	if bg != 0 {
		t.Fatalf("background = %d, want 0", bg)
	}
	if blink {
		t.Fatalf("expected no blink bit set")
	}
	if fg != 7 {
		t.Fatalf("foreground = %d, want 7", fg)
	}
}

func TestCGAColorBlinkBit(t *testing.T) {
	// Attribute bit 7 maps straight through to the blink flag.
	_, _, blink := cgaColor(0x80)
	if !blink {
		t.Fatalf("expected blink bit set for attribute 0x80")
	}
	_, _, noBlink := cgaColor(0x00)
	if noBlink {
		t.Fatalf("expected no blink bit for attribute 0x00")
	}
}

func TestSGRForBrightIndex(t *testing.T) {
	code, bright := sgrFor(8) // ansiPalette[8] = 8 -> bright, base code 0
	if !bright {
		t.Fatalf("expected index 8 to map to a bright color")
	}
	if code != 0 {
		t.Fatalf("code = %d, want 0", code)
	}
}

func TestCGARenderEmitsCursorPositioning(t *testing.T) {
	isa := make([]byte, 0x100000)
	isa[cgaFBStart] = 'A'
	isa[cgaFBStart+1] = 0x07

	var out strings.Builder
	c := NewCGA(isa, &out, nil)
	c.cursorLow = 5
	c.cursorHigh = 0

	c.Render()
	text := out.String()

	if !strings.Contains(text, "A") {
		t.Fatalf("expected rendered output to contain the framebuffer character")
	}
	if !strings.Contains(text, "\x1b[1;6H") {
		t.Fatalf("expected cursor escape for row 1 col 6, got %q", text)
	}
}
