// SPDX-License-Identifier: MPL-2.0

package coreutils

import "testing"

func TestLineWriter_Result(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fill     func(w *lineWriter)
		wantKind ResultKind
		wantText string
	}{
		{"empty", func(*lineWriter) {}, KindNoOutput, ""},
		{"output only", func(w *lineWriter) { w.add("a", "b") }, KindOutput, "a\nb"},
		{"failures only", func(w *lineWriter) { w.fail("x: %s", "bad"); w.fail("y") }, KindFailure, "x: bad\ny"},
		{"mixed", func(w *lineWriter) { w.fail("x: bad"); w.addf("%d", 1) }, KindOutput, "x: bad\n1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var w lineWriter
			tt.fill(&w)
			got := w.result()
			if got.Kind != tt.wantKind || got.Text != tt.wantText {
				t.Errorf("result() = %+v, want kind %d text %q", got, tt.wantKind, tt.wantText)
			}
		})
	}
}

func TestResult_Predicates(t *testing.T) {
	t.Parallel()

	if !Failure("x").IsFailure() || Output("x").IsFailure() {
		t.Error("IsFailure() mismatch")
	}
	if NoOutput().HasOutput() || !Output("").HasOutput() || !Failure("x").HasOutput() {
		t.Error("HasOutput() mismatch")
	}
	if got := Outputf("%d-%s", 1, "a").String(); got != "1-a" {
		t.Errorf("Outputf() = %q, want %q", got, "1-a")
	}
}
