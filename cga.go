// cga.go - CGA-style text-mode framebuffer scanout

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"io"
)

const (
	cgaFBStart  = 0xB8000
	cgaPortBase = 0x03D0
	cgaPortMask = 0xFFF0
	cgaRows     = 25
	cgaCols     = 80
	cgaRowBytes = cgaCols * 2
)

// CGA renders the 25x80 text-mode cell grid living in the ISA region at
// 0xB8000 to a real terminal via ANSI escapes, rather than a bitmap font.
// It owns no memory of its own; it scans out whatever the MMU's ISA region
// currently holds.
type CGA struct {
	isa []byte

	controlMode byte
	cursorLow   byte
	cursorHigh  byte

	out    io.Writer
	logger *Logger
}

// NewCGA creates a CGA scanout device reading from the given ISA backing
// array (borrowed read-only from the MMU) and writing ANSI output to out.
// logger receives unknown-CRTC-index diagnostics; it may be nil.
func NewCGA(isa []byte, out io.Writer, logger *Logger) *CGA {
	return &CGA{isa: isa, out: out, logger: logger}
}

// Input always returns 0x00; every CGA port is write-only.
func (c *CGA) Input(port uint16) (byte, bool) {
	if port&cgaPortMask != cgaPortBase&cgaPortMask {
		return 0, false
	}
	return 0x00, true
}

// Output services the CRTC index/data port pair: offset+4 selects a CRTC
// register, offset+5 writes to it (only the cursor low/high registers,
// indices 0x0F and 0x0E, are implemented).
func (c *CGA) Output(port uint16, data byte) bool {
	if port&cgaPortMask != cgaPortBase&cgaPortMask {
		return false
	}
	switch port & 0x000F {
	case 4:
		c.controlMode = data
		return true
	case 5:
		switch c.controlMode {
		case 0x0F:
			c.cursorLow = data
		case 0x0E:
			c.cursorHigh = data
		default:
			c.logger.Debugf("cga: unknown CRTC index 0x%02X", c.controlMode)
		}
		return true
	}
	return false
}

// cgaColor converts a CGA attribute byte (BGR bit order) into ANSI
// foreground/background SGR codes plus a blink flag, permuting the bit
// order to RGB first per the original BGR->RGB swap.
func cgaColor(attr byte) (fg, bg int, blink bool) {
	b := func(n uint) byte {
		if attr&(1<<n) != 0 {
			return 1
		}
		return 0
	}
	// Bit permutation [2,1,0,3,6,5,4,7] reproduces the BGR->RGB swizzle:
	// new bit i takes the value of old bit perm[i]. Foreground swaps bit0
	// and bit2, background swaps bit4 and bit6, bit7 (blink) is untouched.
	perm := [8]uint{2, 1, 0, 3, 6, 5, 4, 7}
	var bits byte
	for i, p := range perm {
		bits |= b(p) << uint(i)
	}

	fore := bits & 0x0F
	back := (bits & 0x70) >> 4
	blink = bits&0x80 != 0
	return int(fore), int(back), blink
}

const cgaANSIForeBase = 30
const cgaANSIBackBase = 40

// ansiPalette maps the 16 CGA foreground indices onto the nearest ANSI
// 8/16-color SGR offsets (0-7 normal, 8-15 bright via the bold attribute).
var ansiPalette = [16]int{0, 4, 2, 6, 1, 5, 3, 7, 8, 12, 10, 14, 9, 13, 11, 15}

func sgrFor(colorIndex int) (code int, bright bool) {
	v := ansiPalette[colorIndex&0x0F]
	if v >= 8 {
		return v - 8, true
	}
	return v, false
}

// Render scans the full 25x80 cell grid out of the ISA region and writes it
// to the terminal using cursor positioning and SGR color escapes, then
// repositions the hardware cursor from cursor_high/cursor_low.
func (c *CGA) Render() {
	fmt.Fprint(c.out, "\x1b[H")

	for y := 0; y < cgaRows; y++ {
		fmt.Fprintf(c.out, "\x1b[%d;1H", y+1)
		for x := 0; x < cgaCols; x++ {
			base := cgaFBStart + y*cgaRowBytes + x*2
			char := c.isa[base]
			attr := c.isa[base+1]
			if char == 0x00 {
				char = 0x20
			}

			fg, bg, blink := cgaColor(attr)
			fgCode, fgBright := sgrFor(fg)
			bgCode, _ := sgrFor(bg)

			boldSGR := "22"
			if fgBright {
				boldSGR = "1"
			}
			blinkSGR := "25"
			if blink {
				blinkSGR = "5"
			}
			fmt.Fprintf(c.out, "\x1b[%s;%s;%d;%dm%c", boldSGR, blinkSGR, cgaANSIForeBase+fgCode, cgaANSIBackBase+bgCode, char)
		}
	}

	absPos := int(c.cursorHigh)<<8 | int(c.cursorLow)
	row := absPos / cgaCols
	col := absPos % cgaCols
	fmt.Fprintf(c.out, "\x1b[%d;%dH", row+1, col+1)
}
