// Package state persists the recent-projects list across runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const maxRecent = 10

// Project is one remembered project root.
type Project struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type fileState struct {
	Projects    []Project `json:"projects"`
	LastProject string    `json:"last_project,omitempty"`
}

// Manager reads and writes the application state file.
type Manager struct {
	path  string
	state fileState
}

// Load opens the state file at path; missing or unreadable files start
// fresh.
func Load(path string) *Manager {
	m := &Manager{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(data, &m.state); err != nil {
		m.state = fileState{}
	}
	return m
}

// AddProject records a project root, moving it to the head of the recent
// list. Paths that do not exist are ignored.
func (m *Manager) AddProject(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	kept := m.state.Projects[:0]
	for _, p := range m.state.Projects {
		if p.Path != path {
			kept = append(kept, p)
		}
	}
	m.state.Projects = append([]Project{{Name: filepath.Base(path), Path: path}}, kept...)
	if len(m.state.Projects) > maxRecent {
		m.state.Projects = m.state.Projects[:maxRecent]
	}
	m.state.LastProject = path
	return m.persist()
}

// Recent returns remembered projects whose paths still exist,
// most recent first.
func (m *Manager) Recent() []Project {
	var valid []Project
	for _, p := range m.state.Projects {
		if _, err := os.Stat(p.Path); err == nil {
			valid = append(valid, p)
		}
	}
	return valid
}

// LastProject returns the most recently opened project root, or "".
func (m *Manager) LastProject() string {
	if m.state.LastProject == "" {
		return ""
	}
	if _, err := os.Stat(m.state.LastProject); err != nil {
		return ""
	}
	return m.state.LastProject
}

func (m *Manager) persist() error {
	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}
