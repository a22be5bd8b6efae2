package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// documentVersion is bumped when the on-disk shape changes incompatibly.
const documentVersion = 1

// document is the on-disk envelope around a project.
type document struct {
	Version int      `json:"version"`
	Project *Project `json:"project"`
}

// LoadProjectFile reads a project document from path.
func LoadProjectFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project %q: %w", path, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse project %q: %w", path, err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("project %q: unsupported document version %d", path, doc.Version)
	}
	if doc.Project == nil {
		return nil, errors.New("project document has no project")
	}
	return doc.Project, nil
}

// SaveProjectFile writes the project document to path atomically: the JSON is
// staged in a temp file in the same directory and renamed into place, so a
// crash mid-write never truncates an existing project.
func SaveProjectFile(path string, project *Project) error {
	if project == nil {
		return errors.New("project is nil")
	}
	data, err := json.MarshalIndent(document{Version: documentVersion, Project: project}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".project-*.json")
	if err != nil {
		return fmt.Errorf("stage project write: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("flush project: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace project %q: %w", path, err)
	}
	return nil
}
