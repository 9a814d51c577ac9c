// Package hooks runs user scripts when chat events happen. Scripts live in
// <hooks_dir>/<point>.d/ and run in name order with the event described in
// CHATBUF_* environment variables.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/logging"
)

// Point names an event scripts can attach to.
type Point string

const (
	PointLine       Point = "on-line"
	PointJoin       Point = "on-join"
	PointPart       Point = "on-part"
	PointNick       Point = "on-nick"
	PointConnect    Point = "on-connect"
	PointDisconnect Point = "on-disconnect"
	PointSave       Point = "on-save"
)

// FailureMode decides what a failing script does to the caller.
type FailureMode string

const (
	FailAbort  FailureMode = "abort"
	FailWarn   FailureMode = "warn"
	FailIgnore FailureMode = "ignore"
)

// Config controls where scripts are found and how they run.
type Config struct {
	Enabled      bool
	Dir          string
	FailureMode  FailureMode
	Async        bool
	AsyncTimeout time.Duration
	MaxAsync     int
}

// ConfigFromGlobal reads the hooks_* configuration keys.
func ConfigFromGlobal() Config {
	return Config{
		Enabled:      config.GetBool("hooks_enabled", true),
		Dir:          config.Get("hooks_dir", ""),
		FailureMode:  FailureMode(config.Get("hooks_failure_mode", string(FailWarn))),
		Async:        config.GetBool("hooks_async", false),
		AsyncTimeout: time.Duration(config.GetInt("hooks_async_timeout", 30)) * time.Second,
		MaxAsync:     config.GetInt("hooks_max_async", 10),
	}
}

// Event describes what happened. Empty fields are not exported.
type Event struct {
	Server  string
	Channel string
	Nick    string
	Text    string
}

func (e Event) env() map[string]string {
	env := map[string]string{}
	for k, v := range map[string]string{
		"CHATBUF_SERVER":  e.Server,
		"CHATBUF_CHANNEL": e.Channel,
		"CHATBUF_NICK":    e.Nick,
		"CHATBUF_TEXT":    e.Text,
	} {
		if v != "" {
			env[k] = v
		}
	}
	return env
}

// Runner executes hook scripts. It is safe for concurrent use.
type Runner struct {
	cfg    Config
	output io.Writer
	now    func() time.Time

	mu      sync.Mutex
	pending int
	wg      sync.WaitGroup
}

// NewRunner creates a runner writing script output to output. A nil
// output discards it; failures are still logged.
func NewRunner(cfg Config, output io.Writer) *Runner {
	if output == nil {
		output = io.Discard
	}
	if cfg.AsyncTimeout <= 0 {
		cfg.AsyncTimeout = 30 * time.Second
	}
	if cfg.MaxAsync <= 0 {
		cfg.MaxAsync = 10
	}
	return &Runner{cfg: cfg, output: output, now: time.Now}
}

// pointDir is <hooks_dir>/<point>.d.
func (r *Runner) pointDir(point Point) string {
	return filepath.Join(r.cfg.Dir, string(point)+".d")
}

// Scripts returns the executable scripts for point, sorted by name.
func (r *Runner) Scripts(point Point) []string {
	if !r.cfg.Enabled || r.cfg.Dir == "" {
		return nil
	}
	dir := r.pointDir(point)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(scripts)
	return scripts
}

// Run executes the scripts for point. With FailAbort the first failing
// synchronous script stops the run and its error is returned.
func (r *Runner) Run(ctx context.Context, point Point, event Event) error {
	scripts := r.Scripts(point)
	if len(scripts) == 0 {
		return nil
	}
	env := r.environ(point, event)
	logging.Debug("running hooks", "point", string(point), "scripts", len(scripts))

	for _, script := range scripts {
		if r.cfg.Async {
			r.startAsync(script, env)
			continue
		}
		if err := r.runSync(ctx, script, env); err != nil {
			switch r.cfg.FailureMode {
			case FailAbort:
				return err
			case FailIgnore:
			default:
				logging.Warn("hook failed", "script", script, "error", err)
				fmt.Fprintf(r.output, "warning: %v\n", err)
			}
		}
	}
	return nil
}

func (r *Runner) environ(point Point, event Event) []string {
	env := os.Environ()
	env = append(env,
		"CHATBUF_HOOK_POINT="+string(point),
		"CHATBUF_HOOK_TIMESTAMP="+r.now().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		env = append(env, "CHATBUF_BINARY="+exe)
	}
	keys := make([]string, 0, 4)
	vars := event.env()
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}

func (r *Runner) runSync(ctx context.Context, script string, env []string) error {
	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = env
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	if out.Len() > 0 {
		_, _ = r.output.Write(out.Bytes())
	}
	if err != nil {
		return fmt.Errorf("hook %s failed: %w", filepath.Base(script), err)
	}
	logging.Debug("hook completed", "script", script, "duration", time.Since(start))
	return nil
}

func (r *Runner) startAsync(script string, env []string) {
	r.mu.Lock()
	if r.pending >= r.cfg.MaxAsync {
		r.mu.Unlock()
		logging.Warn("too many async hooks pending, skipping", "script", script, "max", r.cfg.MaxAsync)
		return
	}
	r.pending++
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.pending--
			r.mu.Unlock()
			r.wg.Done()
		}()
		ctx, cancel := context.WithTimeout(context.Background(), r.cfg.AsyncTimeout)
		defer cancel()
		if err := r.runSync(ctx, script, env); err != nil && r.cfg.FailureMode != FailIgnore {
			if ctx.Err() == context.DeadlineExceeded {
				logging.Warn("async hook timed out", "script", script, "timeout", r.cfg.AsyncTimeout)
				return
			}
			logging.Warn("async hook failed", "script", script, "error", err)
		}
	}()
}

// Pending returns the number of running async scripts.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Wait blocks until every async script has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
