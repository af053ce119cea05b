// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/doriansuite/doriand/blockchain"
	"github.com/doriansuite/doriand/headerdb"
	"github.com/doriansuite/doriand/mining"
)

// doriandMain is the real main function for doriand.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is
// called.
func doriandMain() error {
	// Load configuration and parse command line.  This also initializes
	// logging and configures it accordingly.
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	dordLog.Infof("Version %s", version())
	dordLog.Infof("Chain parameters: %s", activeNetParams.Name)

	// Load the header database.  The chain replays its contents on
	// startup to restore the main chain state.
	dbPath := filepath.Join(cfg.DataDir, "headers")
	dordLog.Infof("Loading header database from '%s'", dbPath)
	db, err := headerdb.Open(dbPath)
	if err != nil {
		dordLog.Errorf("%v", err)
		return err
	}
	defer func() {
		dordLog.Infof("Gracefully shutting down the database...")
		if err := db.Close(); err != nil {
			dordLog.Errorf("%v", err)
		}
	}()

	chain, err := blockchain.New(&blockchain.Config{
		ChainParams: activeNetParams,
		Store:       db,
	})
	if err != nil {
		dordLog.Errorf("%v", err)
		return err
	}

	best := chain.BestSnapshot()
	dordLog.Infof("Best chain: height %d, hash %v, difficulty bits %08x",
		best.Height, best.Hash, best.Bits)

	// Report what the next block is expected to look like.
	generator := mining.NewBlkTmplGenerator(activeNetParams, chain)
	template, err := generator.NewBlockTemplate()
	if err != nil {
		dordLog.Errorf("%v", err)
		return err
	}
	dordLog.Infof("Next block template: height %d, difficulty bits %08x, "+
		"timestamp %v", template.Height, template.Header.Bits,
		template.Header.Timestamp)

	// Wait until the interrupt signal is received from an OS signal.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	dordLog.Infof("Shutting down...")
	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := doriandMain(); err != nil {
		os.Exit(1)
	}
}
