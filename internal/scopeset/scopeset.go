// Package scopeset manages the user-curated file subset that bounds the
// scope graph: a newline-delimited file of project-relative paths.
// Entries are kept regardless of on-disk existence; stale paths are the
// caller's to tolerate.
package scopeset

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileName is the scope-set file inside the outputs directory.
const FileName = "scope.txt"

// Set is a scope set bound to its backing file.
type Set struct {
	path  string
	files map[string]bool
}

// Load reads the scope set from dir. A missing file is an empty set.
func Load(dir string) (*Set, error) {
	s := &Set{path: filepath.Join(dir, FileName), files: map[string]bool{}}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			s.files[filepath.ToSlash(line)] = true
		}
	}
	return s, sc.Err()
}

// Files returns the member paths in sorted order.
func (s *Set) Files() []string {
	out := make([]string, 0, len(s.files))
	for f := range s.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len returns the member count.
func (s *Set) Len() int { return len(s.files) }

// Contains reports membership.
func (s *Set) Contains(path string) bool {
	return s.files[filepath.ToSlash(path)]
}

// Add inserts a path and persists. Adding an existing member is a no-op.
func (s *Set) Add(path string) error {
	p := filepath.ToSlash(strings.TrimSpace(path))
	if p == "" || s.files[p] {
		return nil
	}
	s.files[p] = true
	return s.save()
}

// Remove deletes a path and persists.
func (s *Set) Remove(path string) error {
	p := filepath.ToSlash(path)
	if !s.files[p] {
		return nil
	}
	delete(s.files, p)
	return s.save()
}

// Clear empties the set and persists.
func (s *Set) Clear() error {
	s.files = map[string]bool{}
	return s.save()
}

func (s *Set) save() error {
	var b strings.Builder
	for _, f := range s.Files() {
		b.WriteString(f)
		b.WriteByte('\n')
	}
	return os.WriteFile(s.path, []byte(b.String()), 0o644)
}
