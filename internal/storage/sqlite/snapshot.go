package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/google/uuid"
)

// Revision describes one saved snapshot.
type Revision struct {
	ID        string
	Seq       int64
	CreatedAt time.Time
	Selection domain.NamePair
}

// Save stores m as a new revision in a single transaction.
func (s *Storage) Save(ctx context.Context, m domain.Model) (Revision, error) {
	if err := m.Validate(); err != nil {
		return Revision{}, fmt.Errorf("sqlite storage: %w: %w", ErrInvalidSnapshot, err)
	}

	rev := Revision{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Selection: m.CurrentSelection(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, fmt.Errorf("sqlite storage: begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, current_server, current_channel) VALUES (?, ?, ?, ?)`,
		rev.ID, rev.CreatedAt.Format(time.RFC3339Nano), string(m.CurrentServerName), string(m.CurrentChannelName))
	if err != nil {
		return Revision{}, fmt.Errorf("sqlite storage: insert snapshot: %w", err)
	}
	if rev.Seq, err = res.LastInsertId(); err != nil {
		return Revision{}, fmt.Errorf("sqlite storage: snapshot seq: %w", err)
	}

	for _, server := range m.Servers() {
		info := m.ServerInfoMap[server]
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO servers (snapshot_seq, name, nick, new_channel_name, draft) VALUES (?, ?, ?, ?, ?)`,
			rev.Seq, string(server), info.Nick, info.NewChannelName, info.ServerBuffer.NewLine); err != nil {
			return Revision{}, fmt.Errorf("sqlite storage: insert server %s: %w", server, err)
		}
		if err := insertLines(ctx, tx, rev.Seq, lineKindServer, server, "", info.ServerBuffer.Lines); err != nil {
			return Revision{}, err
		}

		for _, channel := range m.Channels(server) {
			buf := m.BufferMap[domain.NamePair{Server: server, Channel: channel}]
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO buffers (snapshot_seq, server, channel, draft) VALUES (?, ?, ?, ?)`,
				rev.Seq, string(server), string(channel), buf.NewLine); err != nil {
				return Revision{}, fmt.Errorf("sqlite storage: insert buffer %s/%s: %w", server, channel, err)
			}
			if err := insertLines(ctx, tx, rev.Seq, lineKindChannel, server, channel, buf.Lines); err != nil {
				return Revision{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("sqlite storage: commit save: %w", err)
	}
	return rev, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, seq int64, kind string, server domain.ServerName, channel domain.ChannelName, lines []domain.Line) error {
	if len(lines) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO lines (snapshot_seq, kind, server, channel, position, nick, text) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite storage: prepare lines: %w", err)
	}
	defer stmt.Close()

	for i, line := range lines {
		if _, err := stmt.ExecContext(ctx, seq, kind, string(server), string(channel), i, line.Nick, line.Text); err != nil {
			return fmt.Errorf("sqlite storage: insert line %d of %s/%s: %w", i, server, channel, err)
		}
	}
	return nil
}

// Load returns the newest snapshot, or ErrSnapshotNotFound when nothing
// has been saved.
func (s *Storage) Load(ctx context.Context) (domain.Model, Revision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT seq, id, created_at, current_server, current_channel FROM snapshots ORDER BY seq DESC LIMIT 1`)
	return s.load(ctx, row)
}

// LoadRevision returns the snapshot saved as revision id.
func (s *Storage) LoadRevision(ctx context.Context, id string) (domain.Model, Revision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT seq, id, created_at, current_server, current_channel FROM snapshots WHERE id = ?`, id)
	return s.load(ctx, row)
}

func (s *Storage) load(ctx context.Context, row *sql.Row) (domain.Model, Revision, error) {
	rev, err := scanRevision(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Model{}, Revision{}, ErrSnapshotNotFound
		}
		return domain.Model{}, Revision{}, fmt.Errorf("sqlite storage: load snapshot: %w", err)
	}

	m := domain.NewModel()
	m.CurrentServerName = rev.Selection.Server
	m.CurrentChannelName = rev.Selection.Channel

	if err := loadServers(ctx, s.db, rev.Seq, &m); err != nil {
		return domain.Model{}, Revision{}, err
	}
	if err := loadBuffers(ctx, s.db, rev.Seq, &m); err != nil {
		return domain.Model{}, Revision{}, err
	}
	if err := loadLines(ctx, s.db, rev.Seq, &m); err != nil {
		return domain.Model{}, Revision{}, err
	}
	return m, rev, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRevision(row scanner) (Revision, error) {
	var (
		rev       Revision
		createdAt string
		server    string
		channel   string
	)
	if err := row.Scan(&rev.Seq, &rev.ID, &createdAt, &server, &channel); err != nil {
		return Revision{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Revision{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rev.CreatedAt = t
	rev.Selection = domain.NewNamePair(server, channel)
	return rev, nil
}

func loadServers(ctx context.Context, db *sql.DB, seq int64, m *domain.Model) error {
	rows, err := db.QueryContext(ctx,
		`SELECT name, nick, new_channel_name, draft FROM servers WHERE snapshot_seq = ?`, seq)
	if err != nil {
		return fmt.Errorf("sqlite storage: query servers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, nick, newChannel, draft string
		if err := rows.Scan(&name, &nick, &newChannel, &draft); err != nil {
			return fmt.Errorf("sqlite storage: scan server: %w", err)
		}
		m.ServerInfoMap[domain.ServerName(name)] = domain.ServerInfo{
			Nick:           nick,
			NewChannelName: newChannel,
			ServerBuffer:   domain.Buffer{Lines: []domain.Line{}, NewLine: draft},
		}
	}
	return rows.Err()
}

func loadBuffers(ctx context.Context, db *sql.DB, seq int64, m *domain.Model) error {
	rows, err := db.QueryContext(ctx,
		`SELECT server, channel, draft FROM buffers WHERE snapshot_seq = ?`, seq)
	if err != nil {
		return fmt.Errorf("sqlite storage: query buffers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var server, channel, draft string
		if err := rows.Scan(&server, &channel, &draft); err != nil {
			return fmt.Errorf("sqlite storage: scan buffer: %w", err)
		}
		m.BufferMap[domain.NewNamePair(server, channel)] = domain.Buffer{Lines: []domain.Line{}, NewLine: draft}
	}
	return rows.Err()
}

func loadLines(ctx context.Context, db *sql.DB, seq int64, m *domain.Model) error {
	rows, err := db.QueryContext(ctx,
		`SELECT kind, server, channel, nick, text FROM lines WHERE snapshot_seq = ?
		 ORDER BY kind, server, channel, position`, seq)
	if err != nil {
		return fmt.Errorf("sqlite storage: query lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, server, channel, nick, text string
		if err := rows.Scan(&kind, &server, &channel, &nick, &text); err != nil {
			return fmt.Errorf("sqlite storage: scan line: %w", err)
		}
		line := domain.Line{Nick: nick, Text: text}
		name := domain.ServerName(server)

		switch kind {
		case lineKindServer:
			info, ok := m.ServerInfoMap[name]
			if !ok {
				continue
			}
			info.ServerBuffer.Lines = append(info.ServerBuffer.Lines, line)
			m.ServerInfoMap[name] = info
		case lineKindChannel:
			pair := domain.NewNamePair(server, channel)
			buf, ok := m.BufferMap[pair]
			if !ok {
				continue
			}
			buf.Lines = append(buf.Lines, line)
			m.BufferMap[pair] = buf
		}
	}
	return rows.Err()
}
