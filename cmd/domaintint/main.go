// domaintint - deterministic per-domain banner colours
//
// domaintint gives every hostname a stable colour, honours per-host
// overrides and coloured domain patterns, and decides which hostnames get
// a banner at all.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/domaintint/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
