// main.go - Main entry point for the zisax Z80 single-board-computer emulator

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
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"gopkg.in/urfave/cli.v2"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nA banked Z80 single-board-computer emulator: MMU, CTC, keyboard, floppy and CGA text video.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	app := &cli.App{
		Name:      "zisax",
		Usage:     "run a banked Z80 single-board-computer image",
		ArgsUsage: "BIOS NVRAM",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "d0", Usage: "floppy drive A: image path"},
			&cli.StringFlag{Name: "d1", Usage: "floppy drive B: image path"},
			&cli.StringFlag{Name: "tpa", Usage: "program image loaded at 0x0100"},
			&cli.BoolFlag{Name: "trace", Usage: "enable trace.txt instruction logging"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug.txt logging and post-mortem report"},
			&cli.BoolFlag{Name: "iotest", Usage: "read [io]PPPP[DD] lines from stdin and exit, without running the CPU"},
		},
		Action: run,
	}

	boilerPlate()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "zisax: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return cli.Exit("usage: zisax [options] BIOS NVRAM", 1)
	}
	biosPath := ctx.Args().Get(0)
	nvramPath := ctx.Args().Get(1)

	logger := NewLogger(ctx.Bool("debug"), ctx.Bool("trace"))
	defer logger.Close()

	m := NewMachine(logger, os.Stdout, ctx.Bool("trace"), ctx.Bool("debug"))

	if err := m.MMU.LoadROM(biosPath); err != nil {
		return cli.Exit(fmt.Sprintf("loading bios: %v", err), 1)
	}
	if err := m.MMU.LoadNVRAM(nvramPath); err != nil {
		return cli.Exit(fmt.Sprintf("loading nvram: %v", err), 1)
	}
	if tpa := ctx.String("tpa"); tpa != "" {
		if err := m.MMU.LoadTPA(tpa); err != nil {
			return cli.Exit(fmt.Sprintf("loading tpa: %v", err), 1)
		}
	}
	if d0 := ctx.String("d0"); d0 != "" {
		if err := m.Floppy.LoadImage(0, d0); err != nil {
			return cli.Exit(fmt.Sprintf("loading drive A: %v", err), 1)
		}
	}
	if d1 := ctx.String("d1"); d1 != "" {
		if err := m.Floppy.LoadImage(1, d1); err != nil {
			return cli.Exit(fmt.Sprintf("loading drive B: %v", err), 1)
		}
	}

	if ctx.Bool("iotest") {
		runIOTest(m)
		return nil
	}

	return runInteractive(m, ctx.String("d0"), ctx.String("d1"), ctx.Bool("debug"))
}

// runIOTest reads newline-separated "[io]PPPP[DD]" commands from stdin and
// applies them synchronously to the I/O bus, without running the CPU or
// attaching a terminal front end.
func runIOTest(m *Machine) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd := strings.ReplaceAll(scanner.Text(), " ", "")
		if cmd == "" {
			break
		}
		if strings.HasPrefix(cmd, "#") {
			continue
		}

		port, err := strconv.ParseUint(cmd[1:5], 16, 16)
		if err != nil {
			continue
		}

		switch cmd[0] {
		case 'i':
			val := m.Bus.In(uint16(port))
			fmt.Printf("0x%x %c\n", val, val)
		case 'o':
			data, err := strconv.ParseUint(cmd[5:7], 16, 8)
			if err != nil {
				continue
			}
			m.Bus.Out(uint16(port), byte(data))
		}
	}
}

// runInteractive drives the terminal front end and the tick loop until
// SIGINT, saving floppy images (and, in debug mode, a memory dump and
// post-mortem report) on the way out.
func runInteractive(m *Machine, d0, d1 string, debug bool) error {
	host := NewTerminalHost(m.Keyboard)
	if err := host.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "zisax: warning: could not enter raw terminal mode: %v\n", err)
	}
	defer host.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		m.CPU.SetRunning(false)
	}()

	for m.CPU.Running() {
		key, ok := host.PollKey()
		m.Step(ok, key)

		if debug && m.CPU.Halted {
			m.CGA.Render()
			fmt.Println("**HALT**")
			break
		}
	}

	shutdown(m, d0, d1, debug)
	return nil
}

func shutdown(m *Machine, d0, d1 string, debug bool) {
	if d0 != "" {
		if err := m.Floppy.SaveImage(0); err != nil {
			fmt.Fprintf(os.Stderr, "zisax: warning: saving drive A: %v\n", err)
		}
	}
	if d1 != "" {
		if err := m.Floppy.SaveImage(1); err != nil {
			fmt.Fprintf(os.Stderr, "zisax: warning: saving drive B: %v\n", err)
		}
	}

	if !debug {
		return
	}

	if err := os.WriteFile("memdump.bin", m.MMU.ram, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "zisax: warning: writing memdump.bin: %v\n", err)
	}
	fmt.Println(m.DebugReport())
}
