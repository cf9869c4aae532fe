// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sandterm/sandterm/internal/session"
	"github.com/sandterm/sandterm/internal/testutil"
)

// testStart is the fake clock's starting time in command tests.
var testStart = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

type testEnv struct {
	t     *testing.T
	root  string
	sess  *session.Session
	clock *testutil.FakeClock
	reg   *Registry
	ctx   context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	resolver := testutil.NewSandbox(t)
	clock := testutil.NewFakeClock(testStart)
	sess := session.New(resolver, session.Config{User: "alice", Hostname: "box", Clock: clock})
	reg := NewDefaultRegistry()
	return &testEnv{
		t:     t,
		root:  resolver.Root(),
		sess:  sess,
		clock: clock,
		reg:   reg,
		ctx:   WithHandlerContext(context.Background(), &HandlerContext{Session: sess, Registry: reg}),
	}
}

// run executes a whitespace separated command line through the registry.
func (e *testEnv) run(line string) Result {
	e.t.Helper()
	args := strings.Fields(line)
	return e.reg.Run(e.ctx, args[0], args)
}

// output runs line and fails the test unless it succeeded.
func (e *testEnv) output(line string) string {
	e.t.Helper()
	res := e.run(line)
	if res.IsFailure() {
		e.t.Fatalf("%q failed: %s", line, res.Text)
	}
	return res.Text
}

// failure runs line and fails the test unless it failed.
func (e *testEnv) failure(line string) string {
	e.t.Helper()
	res := e.run(line)
	if !res.IsFailure() {
		e.t.Fatalf("%q = %q, want a failure", line, res.Text)
	}
	return res.Text
}

func (e *testEnv) write(virtual, content string) {
	e.t.Helper()
	testutil.MustWriteFile(e.t, e.root, virtual, content)
}

func (e *testEnv) read(virtual string) string {
	e.t.Helper()
	return testutil.MustReadFile(e.t, e.root, virtual)
}

func (e *testEnv) exists(virtual string) bool {
	return e.sess.FS().Exists(virtual)
}
