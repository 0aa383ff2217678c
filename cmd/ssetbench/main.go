// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	blog "github.com/btcsuite/sset/internal/log"
	"github.com/btcsuite/sset/internal/version"
)

var log btclog.Logger = blog.BnchLog

// run executes every benchmark selected by the configuration and writes the
// reports to stdout.  It returns an error when verification found results
// that disagree with the reference.
func run(cfg *config) error {
	log.Infof("Generating %d %s keys (seed %d)", cfg.NumKeys, cfg.Workload,
		cfg.Seed)
	w := newWorkload(cfg)

	results := make([]result, 0, len(cfg.Engines))
	var mismatches int
	for _, name := range cfg.Engines {
		log.Infof("Benchmarking %s", name)
		res := runEngine(lookupEngine(name), w, cfg.Seed)
		if res.mismatches > 0 {
			log.Errorf("%s: %d results disagree with the reference",
				name, res.mismatches)
			mismatches += res.mismatches
		}
		results = append(results, res)
	}
	title := fmt.Sprintf("Sorted sets: %d %s keys", cfg.NumKeys, cfg.Workload)
	writeReport(os.Stdout, title, results)

	if cfg.Lists && cfg.ListSize > 0 {
		results = results[:0]
		for i := range lists {
			log.Infof("Benchmarking %s", lists[i].name)
			res, err := runList(&lists[i], cfg.ListSize, cfg.Seed)
			if err != nil {
				return fmt.Errorf("%s: %w", lists[i].name, err)
			}
			results = append(results, res)
		}
		title := fmt.Sprintf("Positional lists: %d random positions",
			cfg.ListSize)
		writeReport(os.Stdout, title, results)
	}

	if cfg.Queues {
		log.Infof("Benchmarking stack and queue")
		title := fmt.Sprintf("Stack and queue: %d elements", cfg.NumKeys)
		writeReport(os.Stdout, title, runStackQueue(cfg.NumKeys))
	}

	if mismatches > 0 {
		return fmt.Errorf("verification failed with %d mismatches",
			mismatches)
	}
	return nil
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	// Load configuration and parse command line.
	cfg, _, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	// Show the version and exit if the version flag was specified.
	appName := filepath.Base(os.Args[0])
	if cfg.ShowVersion {
		fmt.Println(appName, "version", version.String())
		return nil
	}

	// Setup the log file when requested.
	defer os.Stdout.Sync()
	if cfg.LogDir != "" {
		logFile := filepath.Join(cfg.LogDir, defaultLogDirName,
			defaultLogName)
		if err := blog.InitLogRotator(logFile); err != nil {
			return err
		}
		defer blog.LogRotator.Close()
	}
	log.Infof("Version %s", version.String())

	if err := run(cfg); err != nil {
		log.Errorf("%v", err)
		return err
	}
	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
