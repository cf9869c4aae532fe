// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"

	"github.com/sandterm/sandterm/internal/session"
	"github.com/sandterm/sandterm/internal/vfs"
)

type (
	// HandlerContext is the execution environment of a command.
	HandlerContext struct {
		// Session is the shell session the command runs in. The caller holds
		// its lock for the duration of Run.
		Session *session.Session
		// Registry is the command table, used by help and lookup commands.
		Registry *Registry
	}

	// handlerContextKey is the context key for storing HandlerContext.
	handlerContextKey struct{}
)

// FS returns the session's filesystem adapter.
func (hc *HandlerContext) FS() *vfs.FS {
	return hc.Session.FS()
}

// WithHandlerContext stores a HandlerContext in the context.
func WithHandlerContext(ctx context.Context, hc *HandlerContext) context.Context {
	return context.WithValue(ctx, handlerContextKey{}, hc)
}

// GetHandlerContext retrieves the HandlerContext from the context.
// It panics when none is present; the dispatcher always installs one.
func GetHandlerContext(ctx context.Context) *HandlerContext {
	hc, ok := ctx.Value(handlerContextKey{}).(*HandlerContext)
	if !ok || hc == nil {
		panic("coreutils: context carries no HandlerContext")
	}
	return hc
}
