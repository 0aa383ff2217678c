// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	blog "github.com/btcsuite/sset/internal/log"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultNumKeys    = 100000
	defaultListSize   = 20000
	defaultWorkload   = "random"
	defaultLogLevel   = "info"
	defaultLogDirName = "logs"
	defaultLogName    = "ssetbench.log"
)

var (
	// knownWorkloads lists the supported key orders.
	knownWorkloads = []string{"random", "sorted", "reversed"}
)

// config defines the configuration options for ssetbench.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion bool     `short:"V" long:"version" description:"Display version information and exit"`
	NumKeys     int      `short:"n" long:"numkeys" description:"Number of keys to insert into every engine"`
	Universe    uint64   `short:"u" long:"universe" description:"Draw keys from [0, universe) -- Use 0 for the full 64-bit range"`
	Seed        uint64   `short:"s" long:"seed" description:"Seed for the key generator and the randomized engines"`
	Workload    string   `short:"w" long:"workload" description:"Order in which keys are inserted {random, sorted, reversed}"`
	Engines     []string `short:"e" long:"engine" description:"Engine to benchmark, may be repeated -- Defaults to all of them"`
	Verify      bool     `long:"verify" description:"Check every lookup against a reference B-tree"`
	Lists       bool     `long:"lists" description:"Also benchmark the positional lists"`
	ListSize    int      `long:"listsize" description:"Number of elements used for the positional list benchmark"`
	Queues      bool     `long:"queues" description:"Also benchmark the stack and the queue"`
	LogDir      string   `long:"logdir" description:"Directory to write a rotated log file to -- Logs go to stdout only when unset"`
	DebugLevel  string   `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
}

// validWorkload returns whether or not workload is a supported key order.
func validWorkload(workload string) bool {
	for _, known := range knownWorkloads {
		if workload == known {
			return true
		}
	}
	return false
}

// loadConfig initializes and parses the config using the passed command line
// arguments.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse the command line options and override or add any specified
//     options
//  3. Validate the options and apply the debug levels
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		NumKeys:    defaultNumKeys,
		ListSize:   defaultListSize,
		Workload:   defaultWorkload,
		DebugLevel: defaultLogLevel,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Nothing else matters when only the version was requested.
	if cfg.ShowVersion {
		return &cfg, remainingArgs, nil
	}

	funcName := "loadConfig"
	fail := func(err error) (*config, []string, error) {
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", blog.SupportedSubsystems())
		os.Exit(0)
	}

	if cfg.NumKeys <= 0 {
		str := "%s: The number of keys must be positive -- parsed [%d]"
		return fail(fmt.Errorf(str, funcName, cfg.NumKeys))
	}
	if cfg.ListSize < 0 {
		str := "%s: The list size may not be negative -- parsed [%d]"
		return fail(fmt.Errorf(str, funcName, cfg.ListSize))
	}

	// Validate the workload.
	cfg.Workload = strings.ToLower(cfg.Workload)
	if !validWorkload(cfg.Workload) {
		str := "%s: The specified workload [%v] is invalid -- " +
			"supported workloads %v"
		return fail(fmt.Errorf(str, funcName, cfg.Workload, knownWorkloads))
	}

	// Validate the engines, defaulting to all of them.
	if len(cfg.Engines) == 0 {
		cfg.Engines = engineNames()
	}
	for i, name := range cfg.Engines {
		name = strings.ToLower(name)
		if lookupEngine(name) == nil {
			str := "%s: The specified engine [%v] is invalid -- " +
				"supported engines %v"
			return fail(fmt.Errorf(str, funcName, name, engineNames()))
		}
		cfg.Engines[i] = name
	}

	// Parse, validate, and set debug log level(s).
	if err := blog.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return fail(fmt.Errorf("%s: %v", funcName, err))
	}

	return &cfg, remainingArgs, nil
}
