// Package formatter renders one-line status summaries of a chat snapshot
// from templates such as "${server}/${channel} [${nick}]", for shell
// prompts and terminal status bars.
package formatter

import (
	"fmt"
	"strconv"

	"github.com/cristianoliveira/chatbuf/internal/domain"
)

// VariableContext contains all data needed for template variable resolution.
type VariableContext struct {
	Server  string
	Channel string
	Nick    string

	ServerCount int
	BufferCount int
	LineCount   int
	TotalLines  int

	LatestNick    string
	LatestMessage string
	Draft         string
	PendingJoin   string
}

// ContextFromModel collects the variables describing m's current buffer.
func ContextFromModel(m domain.Model) VariableContext {
	sel := m.CurrentSelection()
	buf := m.CurrentBuffer()
	ctx := VariableContext{
		Server:      string(sel.Server),
		Channel:     string(sel.Channel),
		Nick:        m.CurrentNick(),
		ServerCount: len(m.ServerInfoMap),
		BufferCount: len(m.BufferMap),
		LineCount:   buf.Len(),
		Draft:       buf.NewLine,
		PendingJoin: m.CurrentServerInfo().NewChannelName,
	}
	if last, ok := buf.Last(); ok {
		ctx.LatestNick = last.Nick
		ctx.LatestMessage = last.Text
	}
	for _, pair := range m.Selections() {
		ctx.TotalLines += m.GetBuffer(pair).Len()
	}
	return ctx
}

// Variables lists every name Resolve accepts, in documentation order.
var Variables = []string{
	"server", "channel", "nick",
	"server-count", "buffer-count", "line-count", "total-lines",
	"latest-nick", "latest-message", "draft", "has-draft", "pending-join",
}

// VariableResolver resolves template variables to their values.
type VariableResolver interface {
	Resolve(varName string, ctx VariableContext) (string, error)
}

type variableResolver struct{}

// NewVariableResolver creates a new variable resolver instance.
func NewVariableResolver() VariableResolver {
	return &variableResolver{}
}

// Resolve returns the string value for a variable from the context.
func (vr *variableResolver) Resolve(varName string, ctx VariableContext) (string, error) {
	switch varName {
	case "server":
		return ctx.Server, nil
	case "channel":
		return ctx.Channel, nil
	case "nick":
		return ctx.Nick, nil

	case "server-count":
		return strconv.Itoa(ctx.ServerCount), nil
	case "buffer-count":
		return strconv.Itoa(ctx.BufferCount), nil
	case "line-count":
		return strconv.Itoa(ctx.LineCount), nil
	case "total-lines":
		return strconv.Itoa(ctx.TotalLines), nil

	case "latest-nick":
		return ctx.LatestNick, nil
	case "latest-message":
		return ctx.LatestMessage, nil
	case "draft":
		return ctx.Draft, nil
	case "has-draft":
		return strconv.FormatBool(ctx.Draft != ""), nil
	case "pending-join":
		return ctx.PendingJoin, nil

	default:
		return "", fmt.Errorf("unknown variable: %s", varName)
	}
}
