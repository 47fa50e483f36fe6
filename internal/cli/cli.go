// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/eullerborges/tcl-pretty-printers/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	var base string

	flags.IntVar(&opts.Pid, "p", 0, "pid of the process to read objects from")
	flags.StringVar(&opts.Dump, "dump", "", "raw memory dump file to read objects from")
	flags.StringVar(&base, "base", "0", "load address of the memory dump")
	flags.StringVar(&opts.Arch, "arch", "", "target architecture: amd64, 386, arm64, arm, ppc64 (default: host)")
	flags.BoolVar(&opts.Printer.PrettyPrint, "pretty", false, "print nested containers with newlines and indentation")
	flags.BoolVar(&opts.Printer.ArrayPrint, "array", false, "label list elements with their index")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateOptions(&opts, base); err != nil {
		return opts, err
	}

	opts.Addresses = args
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: tclobjdump [options] <object address> ...\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateOptions normalizes and validates option values.
func validateOptions(opts *options.Program, base string) error {
	if (opts.Pid == 0) == (opts.Dump == "") {
		return &UsageError{msg: "exactly one of -p or -dump must be given"}
	}

	b, err := strconv.ParseUint(base, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid base address %q: %w", base, err)
	}
	opts.Base = b
	return nil
}
