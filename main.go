// Package main implements tclobjdump, a debugger front end that decodes Tcl
// objects out of a live process or a raw memory dump and pretty prints them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/eullerborges/tcl-pretty-printers/internal/cli"
	"github.com/eullerborges/tcl-pretty-printers/internal/config"
	"github.com/eullerborges/tcl-pretty-printers/internal/layout"
	"github.com/eullerborges/tcl-pretty-printers/internal/memory"
	"github.com/eullerborges/tcl-pretty-printers/internal/options"
	"github.com/eullerborges/tcl-pretty-printers/internal/printer"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(opts)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	printBanner(opts)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Fatal(err.Error())
	}
}

func printBanner(opts options.Program) {
	if opts.Quiet {
		return
	}
	fmt.Println("[ tclobjdump - Tcl object pretty printer ]")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	lay, err := resolveLayout(opts)
	if err != nil {
		return err
	}

	reader, err := createReader(logger, opts)
	if err != nil {
		return err
	}

	reg := printer.Register(logger, lay, reader)
	printOptions := printer.Options{
		PrettyPrint: opts.Printer.PrettyPrint,
		ArrayPrint:  opts.Printer.ArrayPrint,
	}

	for _, arg := range opts.Addresses {
		if err := ctx.Err(); err != nil {
			return err
		}

		addr, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid object address %q: %w", arg, err)
		}
		if !reg.Recognize(addr) {
			logger.Error("Not a recognizable object", log.Hex("address", addr))
			continue
		}

		text, err := reg.Print(addr, printOptions)
		if err != nil {
			logger.Error("Printing object failed", log.Hex("address", addr), log.Err(err))
			continue
		}
		fmt.Printf("0x%x: %s\n", addr, text)
	}
	return nil
}

func resolveLayout(opts options.Program) (layout.Layout, error) {
	if opts.Arch == "" {
		return layout.Host(), nil
	}
	return layout.FromArch(opts.Arch)
}

func createReader(logger *log.Logger, opts options.Program) (memory.Reader, error) {
	if opts.Pid != 0 {
		logger.Debug("Attaching to process", log.Int("pid", opts.Pid))
		return memory.AttachProcess(opts.Pid), nil
	}

	data, err := os.ReadFile(opts.Dump)
	if err != nil {
		return nil, fmt.Errorf("loading memory dump: %w", err)
	}
	logger.Debug("Loaded memory dump",
		log.String("file", opts.Dump),
		log.Hex("base", opts.Base),
		log.Int("size", len(data)))

	snap := memory.NewSnapshot()
	snap.Map(opts.Base, data)
	return snap, nil
}
