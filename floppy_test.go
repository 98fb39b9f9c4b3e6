package main

import (
	"os"
	"path/filepath"
	"testing"
)

func resetFloppy(f *Floppy) {
	f.Output(fdcPortBase+fdcRegDSR, 0x80) // reset bit, arms rqm via initCommand
}

func feedCommand(f *Floppy, opcode, driveHead, track, head, sector byte) {
	f.Output(fdcPortBase+fdcRegFIFO, opcode)
	f.Output(fdcPortBase+fdcRegFIFO, driveHead)
	f.Output(fdcPortBase+fdcRegFIFO, track)
	f.Output(fdcPortBase+fdcRegFIFO, head)
	f.Output(fdcPortBase+fdcRegFIFO, sector)
	f.Output(fdcPortBase+fdcRegFIFO, 0)
	f.Output(fdcPortBase+fdcRegFIFO, 0)
	f.Output(fdcPortBase+fdcRegFIFO, 0)
	f.Output(fdcPortBase+fdcRegFIFO, fdcSectorSize) // 9th byte drives phase into execution
}

func readResultBytes(t *testing.T, f *Floppy) [7]byte {
	t.Helper()
	var out [7]byte
	for i := range out {
		b, ok := f.Input(fdcPortBase + fdcRegFIFO)
		if !ok {
			t.Fatalf("result byte %d: FIFO read unclaimed", i)
		}
		out[i] = b
	}
	return out
}

func TestFloppyPortOutsideRangeUnclaimed(t *testing.T) {
	f := NewFloppy(nil)
	if _, ok := f.Input(0x9999); ok {
		t.Fatalf("expected unrelated port unclaimed")
	}
}

func TestFloppyWriteThenReadRoundTrip(t *testing.T) {
	f := NewFloppy(nil)
	resetFloppy(f)

	feedCommand(f, 0x05, 0x00, 0, 0, 1) // WRITE, drive 0, track 0, head 0, sector 1

	for i := 0; i < fdcSectorSize; i++ {
		f.Output(fdcPortBase+fdcRegFIFO, byte(i))
	}
	result := readResultBytes(t, f)
	if result[3] != 0 || result[4] != 0 || result[5] != 1 {
		t.Fatalf("result track/head/sector = %v, want [0 0 1]", result[3:6])
	}

	resetFloppy(f)
	feedCommand(f, 0x06, 0x00, 0, 0, 1) // READ, same CHS

	for i := 0; i < fdcSectorSize; i++ {
		got, ok := f.Input(fdcPortBase + fdcRegFIFO)
		if !ok {
			t.Fatalf("read byte %d unclaimed", i)
		}
		if got != byte(i) {
			t.Fatalf("read byte %d = 0x%02X, want 0x%02X", i, got, byte(i))
		}
	}
}

func TestFloppyResultST0FailBitWithoutMedia(t *testing.T) {
	f := NewFloppy(nil)
	resetFloppy(f)
	feedCommand(f, 0x06, 0x00, 0, 0, 1)

	for i := 0; i < fdcSectorSize; i++ {
		f.Input(fdcPortBase + fdcRegFIFO)
	}
	result := readResultBytes(t, f)

	want := packST0(0, 0, true)
	if result[0] != want {
		t.Fatalf("ST0 = 0x%02X, want 0x%02X (fail bit set, no media loaded)", result[0], want)
	}
}

func TestFloppyLoadSaveImageLogicalMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disk.img")

	data := make([]byte, fdcImageSize)
	for i := range data {
		data[i] = byte(i)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	f := NewFloppy(nil)
	if err := f.LoadImage(0, path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if err := f.SaveImage(0); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	roundTripped, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved image: %v", err)
	}
	for i := range data {
		if roundTripped[i] != data[i] {
			t.Fatalf("byte %d = 0x%02X after round trip, want 0x%02X", i, roundTripped[i], data[i])
		}
	}
}

func TestFloppyLockCommand(t *testing.T) {
	f := NewFloppy(nil)
	resetFloppy(f)

	f.Output(fdcPortBase+fdcRegFIFO, 0x94) // LOCK with lock bit (bit7) set: 0x94&0x7F==0x14
	if !f.locked {
		t.Fatalf("expected locked=true after LOCK command with bit7 set")
	}

	got, ok := f.Input(fdcPortBase + fdcRegFIFO)
	if !ok {
		t.Fatalf("expected lock result byte claimed")
	}
	if got != 1<<4 {
		t.Fatalf("lock result byte = 0x%02X, want 0x%02X", got, byte(1<<4))
	}
}

func TestFloppyDORMotorAndDriveSelect(t *testing.T) {
	f := NewFloppy(nil)
	f.Output(fdcPortBase+fdcRegDOR, 0x30|0x02) // motors 0 and 1 on, drive 2 selected

	got, _ := f.Input(fdcPortBase + fdcRegDOR)
	if got&0x30 != 0x30 {
		t.Fatalf("DOR motor bits = 0x%02X, want bits 4,5 set", got)
	}
	if f.drive != 2 {
		t.Fatalf("drive = %d, want 2", f.drive)
	}
}
