package domain

import "errors"

var (
	// ErrReservedChannelName indicates a channel named like the server buffer sentinel.
	ErrReservedChannelName = errors.New("channel name is reserved for the server buffer")
	// ErrInvalidChannelName indicates an empty channel name.
	ErrInvalidChannelName = errors.New("invalid channel name")
	// ErrInvalidServerName indicates an empty server name.
	ErrInvalidServerName = errors.New("invalid server name")
	// ErrUnknownServer indicates a server missing from the snapshot.
	ErrUnknownServer = errors.New("unknown server")
	// ErrUnknownChannel indicates a channel buffer missing from the snapshot.
	ErrUnknownChannel = errors.New("unknown channel")
)
