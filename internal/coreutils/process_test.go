// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"strings"
	"testing"
)

func TestProcessCommands(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	want := "  PID TTY          TIME CMD\n" +
		"  101 pts/0    00:00:00 bash\n" +
		"  202 pts/0    00:00:00 python\n" +
		"  303 pts/0    00:00:00 sshd"
	if got := e.output("ps"); got != want {
		t.Errorf("ps = %q, want %q", got, want)
	}

	top := strings.Split(e.output("top"), "\n")
	if len(top) != 5 || !strings.HasPrefix(top[0], "top - 14:07:09 up 0:00") {
		t.Errorf("top = %q", top)
	}
	if top[4] != "  303 root       0.0  0.3 sshd" {
		t.Errorf("top row = %q", top[4])
	}

	if got := e.output("pgrep py"); got != "202" {
		t.Errorf("pgrep = %q", got)
	}
	if got := e.output("pidof sh"); got != "101 303" {
		t.Errorf("pidof = %q", got)
	}
	if res := e.run("pgrep nothing"); res.Kind != KindNoOutput {
		t.Errorf("pgrep no match = %+v", res)
	}

	e.output("kill -9 202")
	if strings.Contains(e.output("ps"), "python") {
		t.Error("kill did not remove the process")
	}
	if got := e.failure("kill 999"); got != "kill: (999) - No such process" {
		t.Errorf("kill missing = %q", got)
	}
	if got := e.failure("kill abc"); got != "kill: abc: arguments must be process IDs" {
		t.Errorf("kill abc = %q", got)
	}

	e.output("killall sshd")
	if got := e.failure("pkill sshd"); got != "pkill: sshd: no process found" {
		t.Errorf("pkill gone = %q", got)
	}

	lsof := strings.Split(e.output("lsof"), "\n")
	if lsof[0] != "COMMAND PID USER FD TYPE NAME" || len(lsof) != 2 {
		t.Errorf("lsof = %q", lsof)
	}
}
