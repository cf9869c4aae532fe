// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"strings"
	"testing"
	"time"
)

func TestIdentityCommands(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	tests := []struct {
		line string
		want string
	}{
		{"echo hello   world", "hello world"},
		{"echo", ""},
		{"whoami", "alice"},
		{"logname", "alice"},
		{"hostname", "box"},
		{"id", "uid=1000(alice) gid=1000(alice) groups=1000(alice)"},
		{"who", "alice tty7    Mar 05 14:07 (:0)"},
		{"date", "Tue Mar 05 14:07:09 UTC 2024"},
		{"uname", "Linux"},
		{"uname -n -r", "box 5.10.0"},
		{"uname -m", "x86_64"},
		{"uname -a", "Linux box 5.10.0 #1 SMP PREEMPT x86_64 GNU/Linux"},
	}
	for _, tt := range tests {
		if got := e.output(tt.line); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.line, got, tt.want)
		}
	}

	if got := e.output("env"); !strings.HasPrefix(got, "USER=alice\nHOME=/\nPWD=/\n") {
		t.Errorf("env = %q", got)
	}
	if got := e.output("locale"); !strings.HasPrefix(got, "LANG=en_US.UTF-8\n") {
		t.Errorf("locale = %q", got)
	}
}

func TestUptime_FollowsClock(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	want := "14:07:09 up 0:00, 1 user, " + loadAverage
	if got := e.output("uptime"); got != want {
		t.Errorf("uptime = %q, want %q", got, want)
	}

	e.clock.Advance(90 * time.Minute)
	want = "15:37:09 up 1:30, 1 user, " + loadAverage
	if got := e.output("uptime"); got != want {
		t.Errorf("uptime after 90m = %q, want %q", got, want)
	}
	if got := e.output("w"); !strings.Contains(got, "1:30") {
		t.Errorf("w = %q", got)
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.sess.AddHistory("ls")
	e.sess.AddHistory("pwd")
	e.sess.AddHistory("history")

	if got := e.output("history"); got != "1  ls\n2  pwd\n3  history" {
		t.Errorf("history = %q", got)
	}
	if got := e.output("history 2"); got != "2  pwd\n3  history" {
		t.Errorf("history 2 = %q", got)
	}
	if got := e.failure("history abc"); got != "history: abc: numeric argument required" {
		t.Errorf("history abc = %q", got)
	}
	e.output("history -c")
	if got := len(e.sess.History()); got != 0 {
		t.Errorf("history -c left %d entries", got)
	}
}

func TestDownload(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	if got := e.failure("download"); got != "download: nothing to save" {
		t.Errorf("download empty = %q", got)
	}

	e.sess.Record("alice@box:/$ ls", "a.txt")
	if got := e.output("download"); got != "Saved session to /session_20240305_140709.txt" {
		t.Errorf("download = %q", got)
	}
	if got := e.read("/session_20240305_140709.txt"); got != "alice@box:/$ ls\na.txt\n" {
		t.Errorf("transcript file = %q", got)
	}

	e.output("mkdir logs")
	e.output("cd logs")
	if got := e.output("download today.txt"); got != "Saved session to /logs/today.txt" {
		t.Errorf("download PATH = %q", got)
	}
}
