package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".addcc_history"
	prompt      = "addcc> "
)

func newReplCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Compile expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := chooseArch(opts.arch)
			if err != nil {
				return err
			}
			return repl(target, cmd.OutOrStdout(), cmd.ErrOrStderr(), newLogger(cmd.ErrOrStderr(), opts.verbose))
		},
	}
}

func repl(target Arch, stdout, stderr io.Writer, logger *log.Logger) error {
	fmt.Fprintf(stdout, "%s REPL. Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", appName)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if histPath == "" {
			return
		}
		f, err := os.Create(histPath)
		if err != nil {
			logger.Printf("cannot save history: %v", err)
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer func() {
		signal.Stop(sigc)
		close(done)
	}()
	go watchSignals(ln, sigc, done, func() { os.Exit(130) })

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(stdout)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		src := strings.TrimSpace(line)
		if src == "" {
			continue
		}
		if src == ":quit" {
			return nil
		}
		ln.AppendHistory(src)

		evalLine(target, line, stdout, stderr)
	}
}

// Closes the line editor and calls exit on the first signal. Returns without
// doing either once done is closed.
func watchSignals(ln io.Closer, sigc <-chan os.Signal, done <-chan struct{}, exit func()) {
	select {
	case <-sigc:
		ln.Close()
		exit()
	case <-done:
	}
}

// Compiles one line and prints the listing followed by its value.
func evalLine(target Arch, src string, stdout, stderr io.Writer) {
	file := &File{contents: src}
	prog, err := compile(stdout, file, target)
	if err != nil {
		report(stderr, file, err)
		return
	}
	fmt.Fprintf(stdout, "# => %d\n", prog.eval())
}
