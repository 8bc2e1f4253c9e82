package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const appName = "addcc"

// Returned by commands that already printed their own diagnostic.
var errReported = errors.New("error reported")

type options struct {
	arch     string // Target architecture
	output   string // Output path, "-" for stdout
	fromFile bool   // The argument names a file instead of holding the source
	verbose  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// Runs the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	// cobra falls back to os.Args for a nil slice.
	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd()
	cmd.SetArgs(protectExpr(cmd, args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "%s: %s\n", appName, err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName + " [flags] <expr>",
		Short: "Compile an addition/subtraction expression to assembly",
		Long: `Addcc compiles an expression such as "10 - 3 + 4" into an assembly
function main that returns the value of the expression.

The expression is a number followed by any number of "+ number" or
"- number" terms. Terms are applied left to right.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return compileCmd(cmd, opts, args[0])
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.arch, "arch", "intel",
		"target architecture ("+strings.Join(archNames(), ", ")+")")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log compiler stages to stderr")

	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "write assembly to `file`")
	cmd.Flags().BoolVarP(&opts.fromFile, "file", "f", false, "read the expression from the named file")

	cmd.AddCommand(newReplCmd(opts))
	return cmd
}

// An expression may start with '-', as in "-1" or "- 3". Unless the last
// argument is a known flag or a flag's value, it is passed after "--" so the
// compiler reports it instead of the flag parser.
func protectExpr(cmd *cobra.Command, args []string) []string {
	if len(args) == 0 || slices.Contains(args, "--") {
		return args
	}
	last := args[len(args)-1]
	if len(last) < 2 || last[0] != '-' {
		return args
	}

	cmd.InitDefaultHelpFlag()
	flags := cmd.Flags()
	if lookupFlag(flags, last) != nil {
		return args
	}
	if len(args) >= 2 {
		prev := args[len(args)-2]
		if f := lookupFlag(flags, prev); f != nil && f.NoOptDefVal == "" && !strings.Contains(prev, "=") {
			return args
		}
	}

	out := append([]string{}, args[:len(args)-1]...)
	return append(out, "--", last)
}

func lookupFlag(flags *pflag.FlagSet, arg string) *pflag.Flag {
	if len(arg) < 2 || arg[0] != '-' {
		return nil
	}
	if strings.HasPrefix(arg, "--") {
		name, _, _ := strings.Cut(arg[2:], "=")
		return flags.Lookup(name)
	}
	return flags.ShorthandLookup(arg[1:2])
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	if !verbose {
		w = io.Discard
	}
	return log.New(w, appName+": ", 0)
}

func compileCmd(cmd *cobra.Command, opts *options, arg string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	target, err := chooseArch(opts.arch)
	if err != nil {
		return err
	}

	file := &File{contents: arg}
	if opts.fromFile {
		if file, err = readFile(arg); err != nil {
			return err
		}
	}
	logger.Printf("compiling %d bytes for %s", len(file.contents), opts.arch)

	var out bytes.Buffer
	prog, err := compile(&out, file, target)
	if err != nil {
		report(cmd.ErrOrStderr(), file, err)
		return errReported
	}
	logger.Printf("emitted %d instructions (%d terms)", len(prog.insts), prog.terms())

	return writeOutput(cmd.OutOrStdout(), opts.output, out.Bytes())
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot open output file: %s: %w", path, err)
	}
	return nil
}
