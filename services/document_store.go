package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"qp-generator-backend/utils"
)

// ErrNotFound is returned when a requested file or subject does not exist.
var ErrNotFound = errors.New("not found")

// outcomesFile is the per-subject course-outcomes cache. It lives inside the
// subject directory but is never listed as an uploaded file.
const outcomesFile = "cos.json"

// DocumentStore keeps uploaded source files on disk, one directory per
// sanitized subject, plus the per-subject course-outcomes cache.
type DocumentStore struct {
	baseDir string
}

func NewDocumentStore(baseDir string) (*DocumentStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DocumentStore{baseDir: baseDir}, nil
}

func (s *DocumentStore) subjectDir(subject string) string {
	return filepath.Join(s.baseDir, utils.SanitizeSubject(subject))
}

// Save writes an uploaded file under the subject's directory, creating it as
// needed. An existing file with the same name is overwritten silently.
func (s *DocumentStore) Save(subject, filename string, data []byte) (string, error) {
	dir := s.subjectDir(subject)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create subject directory: %w", err)
	}

	// Base name only: uploaded names must not escape the subject directory.
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return path, nil
}

// ListSubjects returns the sanitized subject names that have a directory.
func (s *DocumentStore) ListSubjects() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	subjects := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			subjects = append(subjects, entry.Name())
		}
	}
	return subjects, nil
}

// ListFiles returns the uploaded filenames for a subject, excluding the
// course-outcomes cache. A missing subject yields an empty list.
func (s *DocumentStore) ListFiles(subject string) ([]string, error) {
	entries, err := os.ReadDir(s.subjectDir(subject))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == outcomesFile {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// FileExists reports whether an uploaded file is present for the subject.
func (s *DocumentStore) FileExists(subject, filename string) bool {
	info, err := os.Stat(filepath.Join(s.subjectDir(subject), filepath.Base(filename)))
	return err == nil && !info.IsDir()
}

// DeleteFile removes a single uploaded file. Returns ErrNotFound when absent.
func (s *DocumentStore) DeleteFile(subject, filename string) error {
	path := filepath.Join(s.subjectDir(subject), filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return os.Remove(path)
}

// DeleteSubject removes the subject directory and everything in it. Deleting
// a subject that does not exist is not an error.
func (s *DocumentStore) DeleteSubject(subject string) error {
	return os.RemoveAll(s.subjectDir(subject))
}

type outcomesPayload struct {
	CourseOutcomes []string `json:"course_outcomes"`
}

// LoadOutcomes reads the cached course outcomes for a subject. Returns
// ErrNotFound when no cache exists; a corrupt or malformed cache surfaces as
// a parse error so the caller can regenerate.
func (s *DocumentStore) LoadOutcomes(subject string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.subjectDir(subject), outcomesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var payload outcomesPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("corrupt outcomes cache: %w", err)
	}
	if payload.CourseOutcomes == nil {
		return nil, fmt.Errorf("corrupt outcomes cache: missing course_outcomes")
	}
	return payload.CourseOutcomes, nil
}

// SaveOutcomes persists course outcomes to the subject's cos.json,
// overwriting any previous cache. Last write wins under concurrency.
func (s *DocumentStore) SaveOutcomes(subject string, outcomes []string) error {
	dir := s.subjectDir(subject)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create subject directory: %w", err)
	}

	data, err := json.Marshal(outcomesPayload{CourseOutcomes: outcomes})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, outcomesFile), data, 0o644)
}
