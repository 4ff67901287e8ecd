package task

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Store holds the full task collection for one invocation, loaded from and
// flushed to a single JSON file. The file is the only source of truth
// between invocations; no locking guards concurrent processes.
type Store struct {
	path   string
	tasks  []Task
	lastID int
}

// Open loads the store from path. A missing file yields an empty store; a
// file that exists but cannot be read or parsed yields a StorageError.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}

	if err := json.Unmarshal(data, &s.tasks); err != nil {
		return nil, &StorageError{Op: "parse", Path: path, Err: err}
	}

	// Seed the ID counter so new tasks never collide with survivors.
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}

	return s, nil
}

// Path returns the on-disk location of the store.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Save serializes the full collection with 2-space indentation, replacing
// the file. The write goes through a temp file in the same directory plus a
// rename, so a crash mid-write cannot leave a truncated store behind.
func (s *Store) Save() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}

	return nil
}

// Add creates a task with status todo and the next sequential ID, and
// returns a pointer to the stored task.
func (s *Store) Add(description string) *Task {
	now := time.Now().UTC()
	s.lastID++
	s.tasks = append(s.tasks, Task{
		ID:          s.lastID,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return &s.tasks[len(s.tasks)-1]
}

// Get returns a task by ID, or nil if not found.
func (s *Store) Get(id int) *Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

// Update replaces a task's description and refreshes updated_at.
func (s *Store) Update(id int, description string) (*Task, error) {
	t := s.Get(id)
	if t == nil {
		return nil, &NotFoundError{ID: id}
	}
	t.Description = description
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

// Delete removes a task. Surviving tasks keep their IDs and ordering.
func (s *Store) Delete(id int) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

// MarkStatus updates a task's status and refreshes updated_at. The prior
// status is left untouched when the new status is not in the enumerated set.
func (s *Store) MarkStatus(id int, status Status) (*Task, error) {
	t := s.Get(id)
	if t == nil {
		return nil, &NotFoundError{ID: id}
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

// List returns tasks in creation order. A non-empty filter restricts the
// result to tasks with that status.
func (s *Store) List(filter Status) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter != "" && t.Status != filter {
			continue
		}
		out = append(out, t)
	}
	return out
}
