// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	ids := []Id{SandboxRootInvalidId, ConfigLoadFailedId, SSHServerFailedId, HostKeyFailedId, TerminalRequiredId}
	values := Values()
	if len(values) != len(ids) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), len(ids))
	}
	for i, id := range ids {
		is := Get(id)
		if is == nil {
			t.Fatalf("Get(%d) = nil", id)
		}
		if is.Id() != id || values[i].Id() != id {
			t.Errorf("catalog entry %d has id %d", id, is.Id())
		}
		if !strings.HasPrefix(strings.TrimSpace(string(is.MarkdownMsg())), "# ") {
			t.Errorf("issue %d does not start with a heading", id)
		}
	}
	if Get(Id(999)) != nil {
		t.Error("Get(999) should be nil")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	is := &Issue{id: 42, mdMsg: "# Title\nbody", docLinks: []HttpLink{"https://example.com/docs"}}
	out, err := is.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"Title", "body", "See also", "https://example.com/docs"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}
