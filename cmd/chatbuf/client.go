package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cristianoliveira/chatbuf/internal/colors"
	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/format"
	"github.com/cristianoliveira/chatbuf/internal/hooks"
	"github.com/cristianoliveira/chatbuf/internal/logging"
	"github.com/cristianoliveira/chatbuf/internal/storage/sqlite"
	"github.com/cristianoliveira/chatbuf/internal/version"
)

// client connects the commands to the snapshot database named by the
// db_path config key. The database is opened on first use.
type client struct {
	once    sync.Once
	storage *sqlite.Storage
	err     error
}

var defaultClient = &client{}

func (c *client) open() (*sqlite.Storage, error) {
	c.once.Do(func() {
		path := config.Get("db_path", "")
		c.storage, c.err = sqlite.Open(path)
		if c.err == nil {
			logging.Debug("snapshot database opened", "path", path)
		}
	})
	return c.storage, c.err
}

// LoadModel returns the latest saved snapshot, or the initial snapshot
// when nothing has been saved yet.
func (c *client) LoadModel(ctx context.Context) (domain.Model, error) {
	s, err := c.open()
	if err != nil {
		return domain.Model{}, err
	}
	m, rev, err := s.Load(ctx)
	if errors.Is(err, sqlite.ErrSnapshotNotFound) {
		logging.Info("no saved snapshot, using initial state")
		return initialModel(config.GetBool("sample_data", true)), nil
	}
	if err != nil {
		return domain.Model{}, err
	}
	logging.Debug("snapshot loaded", "revision", rev.ID)
	return m, nil
}

// Save stores m and prunes revisions beyond snapshot_keep.
func (c *client) Save(ctx context.Context, m domain.Model) (sqlite.Revision, error) {
	s, err := c.open()
	if err != nil {
		return sqlite.Revision{}, err
	}
	rev, err := s.Save(ctx, m)
	if err != nil {
		return sqlite.Revision{}, err
	}
	if keep := config.GetInt("snapshot_keep", 20); keep > 0 {
		if n, err := s.Prune(ctx, keep, false); err != nil {
			logging.Warn("prune after save failed", "error", err)
		} else if n > 0 {
			logging.Debug("pruned revisions", "count", n)
		}
	}
	logging.Info("snapshot saved", "revision", rev.ID)
	colors.TraceInfo(colors.Trace{
		Component: "storage",
		Action:    "save",
		Status:    "saved",
		Server:    string(rev.Selection.Server),
		Channel:   string(rev.Selection.Channel),
		Fields:    map[string]interface{}{"revision": rev.ID},
	})

	_, runner := hookRunners()
	event := hooks.Event{Server: string(rev.Selection.Server), Channel: string(rev.Selection.Channel), Text: rev.ID}
	if err := runner.Run(ctx, hooks.PointSave, event); err != nil {
		logging.Warn("save hook failed", "error", err)
	}
	return rev, nil
}

// LoadRevision returns the snapshot saved as revision id.
func (c *client) LoadRevision(ctx context.Context, id string) (domain.Model, sqlite.Revision, error) {
	s, err := c.open()
	if err != nil {
		return domain.Model{}, sqlite.Revision{}, err
	}
	return s.LoadRevision(ctx, id)
}

func (c *client) Revisions(ctx context.Context) ([]sqlite.Revision, error) {
	s, err := c.open()
	if err != nil {
		return nil, err
	}
	return s.Revisions(ctx)
}

func (c *client) Prune(ctx context.Context, keep int, dryRun bool) (int, error) {
	s, err := c.open()
	if err != nil {
		return 0, err
	}
	return s.Prune(ctx, keep, dryRun)
}

func (c *client) Version() string {
	return version.String()
}

// initialModel is the state used before anything is saved: the sample
// snapshot, or one server buffer per configured server.
func initialModel(sample bool) domain.Model {
	if sample {
		return domain.DefaultModel()
	}
	return domain.ModelFromServers(config.Get("nick", "guest"), config.GetList("servers"))
}

func outputFormatter() format.Formatter {
	return format.NewFormatter(format.FormatterType(config.Get("output_format", string(format.FormatterTypeColor))))
}

func requireClient(name string, c any) {
	if c == nil {
		panic(fmt.Sprintf("%s: client dependency cannot be nil", name))
	}
}
