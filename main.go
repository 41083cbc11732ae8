// Command termsheets is a terminal-based interactive spreadsheet: navigate
// a grid of cells with hjkl/arrow keys, press i or Enter to edit a cell,
// and Enter again to commit. Formulas start with '=' and reference other
// cells by name, e.g. "=add A0 B1".
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/byronwasti/termsheets/driver"
	"github.com/byronwasti/termsheets/logging"
	"github.com/byronwasti/termsheets/terminal"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	cellWidth := flag.Int("cell-width", 12, "default cell width in character columns")
	cellHeight := flag.Int("cell-height", 1, "default cell height in character rows")
	logPath := flag.String("log", "logs/output.log", "path to the process log file")
	history := flag.Int("history", 100, "max past commits retained for diagnostics")
	flag.Parse()

	closer, err := logging.Open(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termsheets: cannot open log file: %v\n", err)
		return 1
	}
	defer closer.Close()

	input, ok := terminal.NewInput(os.Stdin, os.Stdout)
	if !ok {
		fmt.Fprintln(os.Stderr, "termsheets: stdin/stdout must be a terminal")
		return 1
	}
	defer input.Close()

	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 80, 24
	}

	terminal.EnterAlternateScreen(os.Stdout)
	defer terminal.ExitAlternateScreen(os.Stdout)

	renderer := terminal.NewRenderer(os.Stdout, w, h)
	d := driver.New(input, renderer, *cellWidth, *cellHeight, w, h-1)
	d.SetHistoryLimit(*history)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := d.Run(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "termsheets: %v\n", err)
		return 1
	}
	return 0
}
