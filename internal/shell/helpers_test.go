// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"testing"
	"time"

	"github.com/sandterm/sandterm/internal/coreutils"
	"github.com/sandterm/sandterm/internal/session"
	"github.com/sandterm/sandterm/internal/testutil"
)

type panicCommand struct{}

func (panicCommand) Name() string                         { return "boom" }
func (panicCommand) Synopsis() string                     { return "always panics" }
func (panicCommand) Usage() string                        { return "boom" }
func (panicCommand) Category() coreutils.Category         { return coreutils.CategoryUtility }
func (panicCommand) SupportedFlags() []coreutils.FlagInfo { return nil }
func (panicCommand) Run(context.Context, []string) coreutils.Result {
	panic("kaboom")
}

// newTestShell returns a shell over a fresh sandbox together with the
// sandbox's real root directory.
func newTestShell(t *testing.T) (*Shell, string) {
	t.Helper()
	resolver := testutil.NewSandbox(t)
	clock := testutil.NewFakeClock(time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC))
	sess := session.New(resolver, session.Config{User: "alice", Hostname: "box", Clock: clock})

	reg := coreutils.NewDefaultRegistry()
	reg.Register(panicCommand{})
	return New(sess, NewDispatcher(reg, nil)), resolver.Root()
}
