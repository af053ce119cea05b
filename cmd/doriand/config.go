// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/doriansuite/doriand/chaincfg"
)

const (
	defaultLogLevel    = "info"
	defaultLogDirname  = "logs"
	defaultLogFilename = "doriand.log"
	defaultDataDirname = "data"
)

// activeNetParams are the chain parameters of the network the daemon is
// currently running on.  It is set by loadConfig and never changes afterward.
var activeNetParams = &chaincfg.MainNetParams

// config defines the configuration options for doriand.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion    bool   `short:"V" long:"version" description:"Display version information and exit"`
	DataDir        string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir         string `long:"logdir" description:"Directory to log output"`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	TestNet        bool   `long:"testnet" description:"Use the test network"`
	RegressionTest bool   `long:"regtest" description:"Use the regression test network"`
	SimNet         bool   `long:"simnet" description:"Use the simulation test network (private)"`
}

// defaultHomeDir returns the default base directory for doriand data.
func defaultHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".doriand")
}

// loadConfig initializes and parses the config using command line options.
//
// The above results in daemon functioning properly without any config
// settings while still allowing the user to override settings with command
// line options.  Command line options always take precedence.
func loadConfig() (*config, error) {
	homeDir := defaultHomeDir()
	cfg := config{
		DataDir:    filepath.Join(homeDir, defaultDataDirname),
		LogDir:     filepath.Join(homeDir, defaultLogDirname),
		DebugLevel: defaultLogLevel,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		fmt.Printf("%s version %s\n", appName, version())
		os.Exit(0)
	}

	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if cfg.TestNet {
		numNets++
		activeNetParams = &chaincfg.TestNetParams
	}
	if cfg.RegressionTest {
		numNets++
		activeNetParams = &chaincfg.RegressionNetParams
	}
	if cfg.SimNet {
		numNets++
		activeNetParams = &chaincfg.SimNetParams
	}
	if numNets > 1 {
		str := "the testnet, regtest, and simnet params can't be " +
			"used together -- choose one of the three"
		err := fmt.Errorf("loadConfig: %s", str)
		fmt.Fprintln(os.Stderr, err)
		return nil, err
	}

	// Append the network type to the data and log directories so they are
	// "namespaced" per network.
	cfg.DataDir = filepath.Join(cfg.DataDir, activeNetParams.Name)
	cfg.LogDir = filepath.Join(cfg.LogDir, activeNetParams.Name)

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))

	// Parse, validate, and set debug log level.
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("loadConfig: %v", err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}

	return &cfg, nil
}
