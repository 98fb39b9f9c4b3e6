// main.go - Boot-disk packer: wraps a CP/M-style system image in a ZB boot header

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

	"gopkg.in/urfave/cli.v2"
)

const (
	headCount    = 2
	trackCount   = 40
	sectorsTrack = 32
	sectorSize   = 128
	diskSize     = headCount * trackCount * sectorsTrack * sectorSize

	bootBlockSize  = 256
	bootHeaderSize = 128 // ZB + size byte + 5 boot-vector bytes, padded to one sector
	fillByte       = 0xE5
)

func main() {
	app := &cli.App{
		Name:      "mkdisk",
		Usage:     "pack a CP/M-style system image into a bootable floppy image",
		ArgsUsage: "SYSTEM-IMAGE OUT-IMAGE",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "dest", Value: 0xC000, Usage: "destination load address"},
			&cli.UintFlag{Name: "jump", Value: 0xC000, Usage: "boot jump address"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mkdisk: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return cli.Exit("usage: mkdisk SYSTEM-IMAGE OUT-IMAGE", 1)
	}

	sysData, err := os.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading system image: %v", err), 1)
	}

	image, err := packBootDisk(sysData, uint16(ctx.Uint("dest")), uint16(ctx.Uint("jump")))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := os.WriteFile(ctx.Args().Get(1), image, 0o644); err != nil {
		return cli.Exit(fmt.Sprintf("writing disk image: %v", err), 1)
	}
	return nil
}

// packBootDisk lays out a boot sector of the form
// "ZB" + blockCount + destLo + destHi + jumpLo + jumpHi + 0x01, zero-padded
// to bootHeaderSize, followed by the system image and an 0xE5 fill to the
// full flat disk size. The trailing 0x01 byte is a fixed constant carried
// over from the original boot header, not derived from either address flag.
func packBootDisk(sysData []byte, dest, jump uint16) ([]byte, error) {
	blocks := (len(sysData) + bootBlockSize - 1) / bootBlockSize
	if blocks > 0xFF {
		return nil, fmt.Errorf("system image too large: %d blocks exceeds 255", blocks)
	}

	header := make([]byte, bootHeaderSize)
	header[0] = 'Z'
	header[1] = 'B'
	header[2] = byte(blocks)
	header[3] = byte(dest)
	header[4] = byte(dest >> 8)
	header[5] = byte(jump)
	header[6] = byte(jump >> 8)
	header[7] = 0x01

	image := append(header, sysData...)
	if len(image) > diskSize {
		return nil, fmt.Errorf("system image too large: %d bytes exceeds disk capacity %d", len(image), diskSize)
	}

	fill := make([]byte, diskSize-len(image))
	for i := range fill {
		fill[i] = fillByte
	}
	return append(image, fill...), nil
}
