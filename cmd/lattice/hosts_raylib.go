//go:build raylib

package main

import (
	"github.com/charmbracelet/log"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/host/rlhost"
)

func init() {
	hosts["raylib"] = func(eng *engine.Engine, opts windowOptions, logger *log.Logger) error {
		return rlhost.Run(eng, rlhost.Options(opts), logger)
	}
}
