package main

import (
	"context"
	"os"
	"sync"

	"github.com/cristianoliveira/chatbuf/internal/hooks"
)

// The runners read the hooks_* keys, so they are built on first use,
// after the root command has loaded the configuration.
var (
	hookOnce     sync.Once
	stderrRunner *hooks.Runner
	quietRunner  *hooks.Runner
)

func hookRunners() (stderr, quiet *hooks.Runner) {
	hookOnce.Do(func() {
		cfg := hooks.ConfigFromGlobal()
		stderrRunner = hooks.NewRunner(cfg, os.Stderr)
		quietRunner = hooks.NewRunner(cfg, nil)
	})
	return stderrRunner, quietRunner
}

// cliHooks prints script output to stderr.
type cliHooks struct{}

func (cliHooks) Run(ctx context.Context, point hooks.Point, event hooks.Event) error {
	r, _ := hookRunners()
	return r.Run(ctx, point, event)
}

// tuiHooks discards script output, which would corrupt the screen.
type tuiHooks struct{}

func (tuiHooks) Run(ctx context.Context, point hooks.Point, event hooks.Event) error {
	_, r := hookRunners()
	return r.Run(ctx, point, event)
}

// waitForHooks lets async scripts finish before the process exits.
func waitForHooks() {
	if stderrRunner == nil {
		return
	}
	stderrRunner.Wait()
	quietRunner.Wait()
}
