// machine.go - Orchestrator: wires the CPU to the I/O bus and drives the tick loop

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
	renderEveryNTicks = 50
	busyInstrBudget   = 1000
	traceInstrBudget  = 1
)

// MachineBusAdapter satisfies Z80Bus by routing memory accesses to the MMU
// and port accesses to the shared IOBus. CTC interrupt plumbing (vector
// fetch, RETI notify) passes straight through to the CTC.
type MachineBusAdapter struct {
	mmu *MMU
	bus *IOBus
	ctc *CTC
}

// NewMachineBusAdapter builds the Z80Bus glue used by the orchestrator.
func NewMachineBusAdapter(mmu *MMU, bus *IOBus, ctc *CTC) *MachineBusAdapter {
	return &MachineBusAdapter{mmu: mmu, bus: bus, ctc: ctc}
}

func (a *MachineBusAdapter) Read(addr uint16) byte    { return a.mmu.Read(addr) }
func (a *MachineBusAdapter) Write(addr uint16, v byte) { a.mmu.Write(addr, v) }
func (a *MachineBusAdapter) In(port uint16) byte       { return a.bus.In(port) }
func (a *MachineBusAdapter) Out(port uint16, v byte)   { a.bus.Out(port, v) }
func (a *MachineBusAdapter) Tick(cycles int)           {}
func (a *MachineBusAdapter) InterruptVector() byte     { return a.ctc.InterruptVector() }
func (a *MachineBusAdapter) RetiNotify()               { a.ctc.RetiNotify() }

// Machine owns the CPU and every attached device, and drives the
// fetch/tick/render loop described by the orchestrator design.
type Machine struct {
	CPU      *CPU_Z80
	MMU      *MMU
	CTC      *CTC
	Keyboard *Keyboard
	Floppy   *Floppy
	CGA      *CGA
	Bus      *IOBus

	adapter *MachineBusAdapter
	logger  *Logger
	trace   bool
	debug   bool

	tick uint64
}

// NewMachine wires every device onto the I/O bus in priority order
// (MMU, CTC, Keyboard, Floppy, CGA) and builds the CPU on top of it. cgaOut
// receives the rendered terminal frames.
func NewMachine(logger *Logger, cgaOut io.Writer, trace, debug bool) *Machine {
	mmu := NewMMU()
	m := &Machine{
		MMU:      mmu,
		CTC:      NewCTC(),
		Keyboard: NewKeyboard(logger),
		Floppy:   NewFloppy(logger),
		CGA:      NewCGA(mmu.ISA(), cgaOut, logger),
		logger:   logger,
		trace:    trace,
		debug:    debug,
	}
	m.Bus = NewIOBus(logger, m.MMU, m.CTC, m.Keyboard, m.Floppy, m.CGA)
	m.adapter = NewMachineBusAdapter(m.MMU, m.Bus, m.CTC)
	m.CTC.SetAssertIntFunc(func() { m.CPU.SetIRQLine(true) })
	m.CPU = NewCPU_Z80(m.adapter)

	if debug {
		m.MMU.EnableStackTracking(func() uint16 { return m.CPU.SP })
	}
	return m
}

// regSnapshot renders a one-line register dump in the teacher's tab-separated
// style, used for both trace logging and the end-of-run debug report.
func (m *Machine) regSnapshot() string {
	c := m.CPU
	bc := uint16(c.B)<<8 | uint16(c.C)
	de := uint16(c.D)<<8 | uint16(c.E)
	hl := uint16(c.H)<<8 | uint16(c.L)
	return fmt.Sprintf("PC:%d:%d:%x\tSP: 0x%x\tA:0x%x\tBC:0x%x\tDE:0x%x\tHL:0x%x\tIX:0x%x\tIY:0x%x",
		m.MMU.Mode, m.MMU.PriBank, c.PC, c.SP, c.A, bc, de, hl, c.IX, c.IY)
}

// Step runs one orchestrator tick: an instruction budget, a CTC tick, and
// (every renderEveryNTicks ticks) a CGA render.
func (m *Machine) Step(keyPressed bool, key byte) {
	budget := busyInstrBudget
	if m.trace {
		budget = traceInstrBudget
	}
	m.tick++

	if m.trace {
		m.logger.Tracef("%s", m.regSnapshot())
	}

	m.CPU.Run(budget)
	m.CTC.Tick()

	if keyPressed {
		m.Keyboard.PutKey(translateHostKey(key))
	}

	if m.tick%renderEveryNTicks == 0 {
		m.CGA.Render()
	}
}

// translateHostKey applies the platform key-code quirks described for the
// terminal front end: DEL maps to backspace, LF maps to CR.
func translateHostKey(key byte) byte {
	switch key {
	case 0x7F:
		return 0x08
	case 0x0A:
		return 0x0D
	}
	return key
}

// DebugReport renders the final register snapshot and stack-usage map shown
// when the machine exits with debug mode enabled.
func (m *Machine) DebugReport() string {
	return m.regSnapshot() + "\n" + m.MMU.StackUsageReport()
}
