package main

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/san-kum/lattice/internal/engine"
	"github.com/san-kum/lattice/internal/host/ebitenhost"
)

type windowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	HUD        bool
}

type hostFunc func(eng *engine.Engine, opts windowOptions, logger *log.Logger) error

// hosts maps --host names to window backends; build tags add more.
var hosts = map[string]hostFunc{
	"ebiten": func(eng *engine.Engine, opts windowOptions, logger *log.Logger) error {
		return ebitenhost.Run(eng, ebitenhost.Options(opts), logger)
	},
}

func hostNames() []string {
	names := make([]string, 0, len(hosts))
	for name := range hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
