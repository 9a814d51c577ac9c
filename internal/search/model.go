package search

import (
	"github.com/cristianoliveira/chatbuf/internal/domain"
)

// Match is a line found in a buffer.
type Match struct {
	Pair  domain.NamePair
	Index int
	Line  domain.Line
}

// Scope restricts which buffers are searched. Empty fields match all.
type Scope struct {
	Server  domain.ServerName
	Channel domain.ChannelName
}

func (s Scope) includes(pair domain.NamePair) bool {
	if s.Server != "" && pair.Server != s.Server {
		return false
	}
	return s.Channel == "" || pair.Channel == s.Channel
}

// Model returns the lines of m matching query, buffer by buffer in
// navigation order and oldest first within a buffer. limit <= 0 returns
// every match; otherwise only the newest limit matches are kept.
func Model(m domain.Model, p Provider, query string, scope Scope, limit int) []Match {
	var matches []Match
	for _, pair := range m.Selections() {
		if !scope.includes(pair) {
			continue
		}
		for i, line := range m.GetBuffer(pair).Lines {
			if p.Match(line, query) {
				matches = append(matches, Match{Pair: pair, Index: i, Line: line})
			}
		}
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}
	return matches
}
