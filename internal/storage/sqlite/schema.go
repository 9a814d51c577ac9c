package sqlite

// Server buffer lines are stored with kind 'server' and an empty channel,
// so the server buffer never needs a row in buffers.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
	seq             INTEGER PRIMARY KEY AUTOINCREMENT,
	id              TEXT    NOT NULL UNIQUE,
	created_at      TEXT    NOT NULL,
	current_server  TEXT    NOT NULL,
	current_channel TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS servers (
	snapshot_seq     INTEGER NOT NULL,
	name             TEXT    NOT NULL,
	nick             TEXT    NOT NULL,
	new_channel_name TEXT    NOT NULL,
	draft            TEXT    NOT NULL,
	PRIMARY KEY (snapshot_seq, name)
);

CREATE TABLE IF NOT EXISTS buffers (
	snapshot_seq INTEGER NOT NULL,
	server       TEXT    NOT NULL,
	channel      TEXT    NOT NULL CHECK (channel <> ''),
	draft        TEXT    NOT NULL,
	PRIMARY KEY (snapshot_seq, server, channel)
);

CREATE TABLE IF NOT EXISTS lines (
	snapshot_seq INTEGER NOT NULL,
	kind         TEXT    NOT NULL CHECK (kind IN ('server', 'channel')),
	server       TEXT    NOT NULL,
	channel      TEXT    NOT NULL,
	position     INTEGER NOT NULL,
	nick         TEXT    NOT NULL,
	text         TEXT    NOT NULL,
	PRIMARY KEY (snapshot_seq, kind, server, channel, position)
);
`

const (
	lineKindServer  = "server"
	lineKindChannel = "channel"
)
