// Package main is the command line front end for the Essence parser.
//
// # License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/npillmayer/essence"
	"github.com/npillmayer/essence/essence/cli"
)

func main() {
	var stop context.CancelFunc
	essence.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cli.Execute()
}
