// keyboard.go - PS/2-style scancode keyboard: host key queue and command port

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

const (
	kbdPortBase = 0x0020
	kbdPortMask = 0xFFF0
)

// keyScancode maps host characters to their PS/2 scancode-set-2 make-code
// sequence. Uppercase letters and shifted symbols are prefixed with the
// left-shift make code (0x12); the four control characters produced by
// Ctrl-A..Ctrl-D are prefixed with the left-ctrl make code (0x14).
var keyScancode = map[byte][]byte{
	'a': {0x1C}, 'b': {0x32}, 'c': {0x21}, 'd': {0x23},
	'e': {0x24}, 'f': {0x2B}, 'g': {0x34}, 'h': {0x33},
	'i': {0x43}, 'j': {0x3B}, 'k': {0x42}, 'l': {0x4B},
	'm': {0x3A}, 'n': {0x31}, 'o': {0x44}, 'p': {0x4D},
	'q': {0x15}, 'r': {0x2D}, 's': {0x1B}, 't': {0x2C},
	'u': {0x3C}, 'v': {0x2A}, 'w': {0x1D}, 'x': {0x22},
	'y': {0x35}, 'z': {0x1A}, '0': {0x45}, '1': {0x16},
	'2': {0x1E}, '3': {0x26}, '4': {0x25}, '5': {0x2E},
	'6': {0x36}, '7': {0x3D}, '8': {0x3E}, '9': {0x46},
	'`': {0x0E}, '-': {0x4E}, '=': {0x55}, '\\': {0x5D},
	'[': {0x54}, ']': {0x5B}, ';': {0x4C}, '\'': {0x52},
	',': {0x41}, '.': {0x49}, '/': {0x4A}, ' ': {0x29},
	0x08: {0x66}, 0x09: {0x0D}, 0x0D: {0x5A}, 0x1B: {0x76},

	'A': {0x12, 0x1C}, 'B': {0x12, 0x32}, 'C': {0x12, 0x21}, 'D': {0x12, 0x23},
	'E': {0x12, 0x24}, 'F': {0x12, 0x2B}, 'G': {0x12, 0x34}, 'H': {0x12, 0x33},
	'I': {0x12, 0x43}, 'J': {0x12, 0x3B}, 'K': {0x12, 0x42}, 'L': {0x12, 0x4B},
	'M': {0x12, 0x3A}, 'N': {0x12, 0x31}, 'O': {0x12, 0x44}, 'P': {0x12, 0x4D},
	'Q': {0x12, 0x15}, 'R': {0x12, 0x2D}, 'S': {0x12, 0x1B}, 'T': {0x12, 0x2C},
	'U': {0x12, 0x3C}, 'V': {0x12, 0x2A}, 'W': {0x12, 0x1D}, 'X': {0x12, 0x22},
	'Y': {0x12, 0x35}, 'Z': {0x12, 0x1A}, ')': {0x12, 0x45}, '!': {0x12, 0x16},
	'@': {0x12, 0x1E}, '#': {0x12, 0x26}, '$': {0x12, 0x25}, '%': {0x12, 0x2E},
	'^': {0x12, 0x36}, '&': {0x12, 0x3D}, '*': {0x12, 0x3E}, '(': {0x12, 0x46},
	'~': {0x12, 0x0E}, '_': {0x12, 0x4E}, '+': {0x12, 0x55}, '|': {0x12, 0x5D},
	'{': {0x12, 0x54}, '}': {0x12, 0x5B}, ':': {0x12, 0x4C}, '"': {0x12, 0x52},
	'<': {0x12, 0x41}, '>': {0x12, 0x49}, '?': {0x12, 0x4A},

	0x01: {0x14, 0x1C}, 0x02: {0x14, 0x32}, 0x03: {0x14, 0x21}, 0x04: {0x14, 0x23},
}

// Keyboard is a scancode FIFO fed from the host terminal and drained one
// byte at a time by the guest, plus a two-byte command protocol on its
// upper two ports.
type Keyboard struct {
	queue     []byte
	cmdActive bool
	ack       byte

	logger *Logger
}

// NewKeyboard creates an empty keyboard with no pending scancodes. logger
// receives unknown-scancode diagnostics; it may be nil.
func NewKeyboard(logger *Logger) *Keyboard {
	return &Keyboard{logger: logger}
}

// PutKey enqueues the make-code sequence for a host character followed by
// its release sequence. The release sequence is built by emitting 0xF0
// then the make-code byte for every byte except a 0xE0 lead-in — this
// intentionally produces "0xE0 x 0xF0 x" rather than the standard PS/2
// "0xE0 x 0xE0 0xF0 x" break sequence, matching observed host behavior.
func (k *Keyboard) PutKey(ch byte) {
	codes, ok := keyScancode[ch]
	if !ok {
		k.logger.Debugf("keyboard: unknown scancode for character 0x%02X", ch)
		return
	}

	for _, code := range codes {
		k.queue = append(k.queue, code)
	}
	for _, code := range codes {
		if code != 0xE0 {
			k.queue = append(k.queue, 0xF0)
		}
		k.queue = append(k.queue, code)
	}
}

func (k *Keyboard) getCode() byte {
	if len(k.queue) == 0 {
		return 0x00
	}
	code := k.queue[0]
	k.queue = k.queue[1:]
	return code
}

// Input services reads from the keyboard's four ports: port+0 dequeues a
// scancode (or returns 0x00 while a command is in progress), port+3 returns
// the last command acknowledgement byte.
func (k *Keyboard) Input(port uint16) (byte, bool) {
	if port&kbdPortMask != kbdPortBase&kbdPortMask {
		return 0, false
	}
	switch port & 0x000F {
	case 0:
		if k.cmdActive {
			return 0x00, true
		}
		return k.getCode(), true
	case 3:
		return k.ack, true
	}
	return 0, false
}

// Output services writes to the keyboard's command ports: port+1 delivers a
// command byte while cmd_active is set (and acknowledges it), port+2 toggles
// cmd_active from its low bit.
func (k *Keyboard) Output(port uint16, data byte) bool {
	if port&kbdPortMask != kbdPortBase&kbdPortMask {
		return false
	}
	switch port & 0x000F {
	case 1:
		if k.cmdActive {
			k.ack = 0x01
		}
		return true
	case 2:
		k.cmdActive = data&0x01 == 1
		return true
	}
	return false
}
