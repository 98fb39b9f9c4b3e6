// iobus.go - Ordered port dispatch across all attached devices

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

// IOPort is the capability every port-mapped device on the bus implements.
// Input returns (value, true) if the device claims the port, (_, false)
// otherwise; Output returns true if the device accepted the write.
type IOPort interface {
	Input(port uint16) (byte, bool)
	Output(port uint16, data byte) bool
}

// IOBus dispatches port reads/writes across an ordered list of devices.
// Reads resolve to the first device that claims the port; writes are
// offered to every device, and an unclaimed write is logged, never raised.
type IOBus struct {
	devices []IOPort
	logger  *Logger
}

// NewIOBus creates a bus wired with the given devices in priority order.
func NewIOBus(logger *Logger, devices ...IOPort) *IOBus {
	return &IOBus{devices: devices, logger: logger}
}

// In performs a port read, returning 0x00 if no device claims the port.
func (b *IOBus) In(port uint16) byte {
	for _, d := range b.devices {
		if val, ok := d.Input(port); ok {
			return val
		}
	}
	return 0x00
}

// Out performs a port write, offering it to every device on the bus.
func (b *IOBus) Out(port uint16, data byte) {
	handled := false
	for _, d := range b.devices {
		if d.Output(port, data) {
			handled = true
		}
	}
	if !handled {
		b.logger.Debugf("unhandled output: 0x%04X:0x%02X", port, data)
	}
}
