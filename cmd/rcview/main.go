// rcview is an ownership sandbox: it executes handle-manipulation
// commands against a tracked registry and shows the control-block
// bookkeeping as it changes.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/lifetime/track"
)

func main() {
	var (
		script      = flag.String("script", "", "Commands to run, separated by ';' or newlines")
		verbose     = flag.Bool("v", false, "Log lifecycle events")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		track.SetLogger(l)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *script == "" {
		fmt.Fprintln(os.Stderr, "Usage: rcview -script 'make a; clone a b; weak a w; drop a; drop b; count w'")
		fmt.Fprintln(os.Stderr, "       rcview -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       rcview -   (read commands from stdin)")
		os.Exit(1)
	}

	if err := runScript(*script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScript(script string) error {
	sb := newSandbox()

	var lines []string
	if script == "-" {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	} else {
		lines = strings.FieldsFunc(script, func(r rune) bool {
			return r == ';' || r == '\n'
		})
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out, err := sb.exec(line)
		if err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
		if out != "" {
			fmt.Println(out)
		}
	}

	fmt.Println(sb.stats())
	return nil
}
