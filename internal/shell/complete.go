// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"slices"
	"strings"

	"github.com/sandterm/sandterm/pkg/vpath"
)

// Complete returns the candidate completions of the last word of line. The
// first word completes against command names, later words against entries
// of the sandbox; directories carry a trailing "/". Candidates are whole
// words, sorted.
func (s *Shell) Complete(line string) []string {
	s.sess.Lock()
	defer s.sess.Unlock()

	word := line[strings.LastIndexAny(line, " \t")+1:]
	if strings.TrimSpace(line) == word && !strings.Contains(word, "/") {
		return s.completeCommand(word)
	}
	return s.completePath(word)
}

func (s *Shell) completeCommand(prefix string) []string {
	var out []string
	for _, name := range s.dispatcher.Registry().Names() {
		if strings.HasPrefix(name, strings.ToLower(prefix)) {
			out = append(out, name)
		}
	}
	return out
}

func (s *Shell) completePath(word string) []string {
	dir, prefix := "", word
	if i := strings.LastIndex(word, "/"); i >= 0 {
		dir, prefix = word[:i+1], word[i+1:]
	}
	listDir := dir
	if listDir == "" {
		listDir = "."
	}

	fsys := s.sess.FS()
	entries, err := fsys.List(listDir)
	if err != nil {
		return nil
	}
	var out []string
	for _, name := range entries {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		candidate := dir + name
		if fsys.IsDir(vpath.Join(fsys.Abs(listDir), name)) {
			candidate += "/"
		}
		out = append(out, candidate)
	}
	slices.Sort(out)
	return out
}

// commonPrefix returns the longest prefix shared by every word.
func commonPrefix(words []string) string {
	if len(words) == 0 {
		return ""
	}
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}
