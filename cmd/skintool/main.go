// skintool is a headless utility for rendering, checking and converting
// avatar skins.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/skinview/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if os.Getenv("SKINTOOL_DEBUG") != "" {
		_ = logger.Init("debug", "")
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "render", "r":
		err = cmdRender(args)
	case "face":
		err = cmdFace(args)
	case "export", "x":
		err = cmdExport(args)
	case "validate", "check":
		err = cmdValidate(args)
	case "template":
		err = cmdTemplate(args)
	case "catalog", "ls":
		err = cmdCatalog(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`skintool - avatar skin utility

Usage:
  skintool <command> [options]

Commands:
  render <skin> [options]        Render the avatar to PNG or WebP
  face <skin> [-o out.png]       Write a 72x72 face thumbnail
  export <skin> [-o out.glb]     Export the posed avatar as binary glTF
  validate <image>...            Check skin and cape layouts
  template [-slim] [-o out.png]  Write the procedural template skin
  catalog <skins.json>           List the skins in a catalog

Render options:
  -cape f  -slim  -exploded  -grid  -ortho  -hide hat,jacket,...
  -yaw d  -pitch d  -zoom z  -size WxH  -ss n  -bg r,g,b
  -format png|webp  -o out  -config skinview.yaml  -publish

Examples:
  skintool render steve.png -cape cape.png -size 512x512 -o steve.webp
  skintool render alex.png -slim -exploded -grid -yaw 180
  skintool export steve.png -cape cape.png -o steve.glb
  skintool validate *.png`)
}

// parseArgs parses flags that may appear after positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q", s)
	}
	return w, h, nil
}

// parseColor parses "r,g,b" with components in [0, 1].
func parseColor(s string) ([3]float32, error) {
	var c [3]float32
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return c, fmt.Errorf("invalid color %q, want r,g,b", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil || v < 0 || v > 1 {
			return c, fmt.Errorf("invalid color component %q", p)
		}
		c[i] = float32(v)
	}
	return c, nil
}
