// mmu.go - Banked memory-management unit: four 1MiB regions muxed into the Z80's 64KiB space

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
	"os"
)

const regionSize = 1 << 20 // 1 MiB per region

const (
	mmuPortBase   = 0x0000
	mmuPortCount  = 4
	mmuRegMapped  = mmuPortBase + 0
	mmuRegMode    = mmuPortBase + 1
	mmuRegPriBank = mmuPortBase + 2
	mmuRegIsaBank = mmuPortBase + 3
)

const (
	mappedPage0Overlay = 0x01 // bit0: page-0 RAM overlay
	mappedUpperOverlay = 0x02 // bit1: upper-32K RAM overlay
	mappedISAOverlay   = 0x04 // bit2: 4K ISA window at 0xF000
)

const (
	modeROM = iota
	modeRAM
	modeISA
	modeNVRAM
)

// region identifies which of the four backing arrays an access resolved to.
type region int

const (
	regionROM region = iota
	regionRAM
	regionISA
	regionNVRAM
)

// MMU multiplexes four 1MiB byte arrays (ROM, RAM, ISA, NVRAM) into the Z80's
// 16-bit address space via a mode register, a 32K primary bank, an 8-bit ISA
// window bank, and three overlay bits. Only MMU itself may mutate these arrays.
type MMU struct {
	rom   []byte
	ram   []byte
	isa   []byte
	nvram []byte

	Mapped  byte
	Mode    byte
	PriBank byte
	IsaBank byte

	nvramPath string

	// stackProbe, when non-nil, is polled on every memory access to record
	// the current stack pointer for the post-mortem stack-usage map.
	stackProbe func() uint16
	stackUsed  map[uint16]struct{}
	debugStack bool
}

// NewMMU allocates the four backing regions, each exactly 1MiB.
func NewMMU() *MMU {
	return &MMU{
		rom:       make([]byte, regionSize),
		ram:       make([]byte, regionSize),
		isa:       make([]byte, regionSize),
		nvram:     make([]byte, regionSize),
		stackUsed: make(map[uint16]struct{}),
	}
}

// EnableStackTracking turns on per-access SP recording, used to build the
// post-mortem stack-usage report when debug mode is active.
func (m *MMU) EnableStackTracking(probe func() uint16) {
	m.debugStack = true
	m.stackProbe = probe
}

// ISA exposes the ISA region as a read-only borrowed handle for CGA scanout.
// CGA must never write through this handle.
func (m *MMU) ISA() []byte {
	return m.isa
}

// regionFor returns the backing slice for the currently selected MODE.
func (m *MMU) regionFor(mode byte) []byte {
	switch mode & 0x03 {
	case modeRAM:
		return m.ram
	case modeISA:
		return m.isa
	case modeNVRAM:
		return m.nvram
	default:
		return m.rom
	}
}

// resolve implements the §4.1 priority rules: page-0 overlay, then the ISA
// window, then the upper-32K overlay, then the mode-selected primary bank.
// full is always masked into [0, regionSize) so it can never index out of bounds.
func (m *MMU) resolve(addr uint16) (region, []byte, uint32) {
	if m.Mapped&mappedPage0Overlay != 0 && addr&0xFF00 == 0 {
		return regionRAM, m.ram, uint32(addr)
	}

	if m.Mapped&mappedISAOverlay != 0 && addr&0xF000 == 0xF000 {
		full := uint32(m.IsaBank)<<12 | uint32(addr&0x0FFF)
		return regionISA, m.isa, full & (regionSize - 1)
	}

	if m.Mapped&mappedUpperOverlay != 0 && addr&0x8000 != 0 {
		return regionRAM, m.ram, uint32(addr)
	}

	adjBank := uint32(m.PriBank)
	if addr&0x8000 != 0 {
		adjBank++
	}
	full := (adjBank << 15) | uint32(addr&0x7FFF)
	full &= regionSize - 1

	switch m.Mode & 0x03 {
	case modeRAM:
		return regionRAM, m.ram, full
	case modeISA:
		return regionISA, m.isa, full
	case modeNVRAM:
		return regionNVRAM, m.nvram, full
	default:
		return regionROM, m.rom, full
	}
}

// Read services a CPU memory read.
func (m *MMU) Read(addr uint16) byte {
	if m.debugStack && m.stackProbe != nil {
		m.stackUsed[m.stackProbe()] = struct{}{}
	}
	_, chip, full := m.resolve(addr)
	return chip[full]
}

// Write services a CPU memory write. Writing to ROM is fatal. Writing to
// NVRAM additionally flushes the whole region back to its backing file.
func (m *MMU) Write(addr uint16, data byte) {
	reg, chip, full := m.resolve(addr)
	if reg == regionROM {
		fmt.Fprintf(os.Stderr, "zisax: fatal: write to ROM at 0x%04X\n", addr)
		os.Exit(1)
	}
	chip[full] = data
	if reg == regionNVRAM {
		m.saveNVRAM()
	}
}

// Input services the four MMU control ports at mmuPortBase.
func (m *MMU) Input(port uint16) (byte, bool) {
	switch port {
	case mmuRegMapped:
		return m.Mapped, true
	case mmuRegMode:
		return m.Mode, true
	case mmuRegPriBank:
		return m.PriBank, true
	case mmuRegIsaBank:
		return m.IsaBank, true
	}
	return 0, false
}

// Output services writes to the four MMU control ports.
func (m *MMU) Output(port uint16, data byte) bool {
	switch port {
	case mmuRegMapped:
		m.Mapped = data
		return true
	case mmuRegMode:
		m.Mode = data
		return true
	case mmuRegPriBank:
		m.PriBank = data
		return true
	case mmuRegIsaBank:
		m.IsaBank = data
		return true
	}
	return false
}

// LoadROM reads a BIOS image into the start of the ROM region.
func (m *MMU) LoadROM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load rom: %w", err)
	}
	copy(m.rom, data)
	return nil
}

// LoadNVRAM reads a persisted NVRAM image and remembers path for autosave.
func (m *MMU) LoadNVRAM(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load nvram: %w", err)
	}
	m.nvramPath = path
	copy(m.nvram, data)
	return nil
}

func (m *MMU) saveNVRAM() {
	if m.nvramPath == "" {
		return
	}
	if err := os.WriteFile(m.nvramPath, m.nvram, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "zisax: warning: nvram flush failed: %v\n", err)
	}
}

// LoadTPA loads a raw program image at RAM[0x0100..] (the classic CP/M TPA base).
func (m *MMU) LoadTPA(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load tpa: %w", err)
	}
	copy(m.ram[0x0100:], data)
	return nil
}

// stackRanges partitions the 16-bit address space for the stack-usage report.
var stackRanges = []struct {
	name   string
	lo, hi uint16
}{
	{"PROG/MODULE", 0x0100, 0x8000},
	{"STARTUP", 0x8000, 0xC000},
	{"CCP", 0xC000, 0xC8F9},
	{"BDOS", 0xC8F9, 0xDA00},
	{"INT", 0xDA00, 0xF000},
}

// StackUsageReport renders the post-mortem stack-usage map: contiguous runs
// of observed SP values, followed by a min/max summary per named section.
func (m *MMU) StackUsageReport() string {
	addrs := make([]uint16, 0, len(m.stackUsed))
	for a := range m.stackUsed {
		addrs = append(addrs, a)
	}
	sortUint16(addrs)

	var lines []string
	var start, stop uint16
	for i, addr := range addrs {
		if addr > stop+2 || i == len(addrs)-1 {
			section := "Unknown"
			for _, r := range stackRanges {
				if start > r.lo && stop <= r.hi {
					section = r.name
				}
			}
			lines = append(lines, fmt.Sprintf("0x%x:0x%x (%d) - (%s)", start, stop, stop-start, section))
			start = addr
		}
		stop = addr
	}
	lines = append(lines, "")

	for _, r := range stackRanges {
		var lo uint16 = 0xFFFF
		var hi uint16
		for _, addr := range addrs {
			if addr > r.lo && addr <= r.hi {
				if addr < lo {
					lo = addr
				}
				if addr > hi {
					hi = addr
				}
			}
		}
		lines = append(lines, fmt.Sprintf("%s  0x%x:0x%x (%d)", r.name, lo, hi, hi-lo))
	}

	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}

func sortUint16(s []uint16) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
