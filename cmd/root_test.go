// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/taskman/internal/task"
)

// testDir points the CLI at a fresh working directory so config discovery
// and the default task file stay hermetic.
func testDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "home", ".config"))
	return dir
}

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup (t.Chdir needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Chdir back failed: %v", err)
		}
	})
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	return Run(context.Background(), args)
}

func reload(t *testing.T, dir string) *task.Store {
	t.Helper()
	store, err := task.Open(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("reloading store: %v", err)
	}
	return store
}

func TestRun(t *testing.T) {
	t.Run("shows help with --help flag", func(t *testing.T) {
		testDir(t)
		if err := run(t, "--help"); err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		testDir(t)
		if err := run(t, "help"); err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		testDir(t)
		if err := run(t, "--version"); err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		testDir(t)
		err := run(t, "frobnicate")
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})
}

func TestAddCommand(t *testing.T) {
	dir := testDir(t)

	if err := run(t, "add", "buy milk"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	store := reload(t, dir)
	if store.Len() != 1 {
		t.Fatalf("task count: got %d, want 1", store.Len())
	}
	got := store.List("")[0]
	if got.ID != 1 || got.Description != "buy milk" || got.Status != task.StatusTodo {
		t.Errorf("stored task: %+v", got)
	}
}

func TestAddJoinsBareWords(t *testing.T) {
	dir := testDir(t)

	if err := run(t, "add", "buy", "milk", "and", "eggs"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	store := reload(t, dir)
	if got := store.List("")[0].Description; got != "buy milk and eggs" {
		t.Errorf("Description: got %q", got)
	}
}

func TestAddRequiresDescription(t *testing.T) {
	testDir(t)

	if err := run(t, "add"); err == nil {
		t.Error("expected error for add without description")
	}
}

func TestUpdateCommand(t *testing.T) {
	dir := testDir(t)

	if err := run(t, "add", "draft"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "update", "1", "final version"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	store := reload(t, dir)
	if got := store.Get(1).Description; got != "final version" {
		t.Errorf("Description: got %q, want %q", got, "final version")
	}
}

func TestUpdateNotFound(t *testing.T) {
	testDir(t)

	err := run(t, "update", "9", "nothing")
	var nf *task.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteCommand(t *testing.T) {
	dir := testDir(t)

	if err := run(t, "add", "one"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "add", "two"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "delete", "1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	store := reload(t, dir)
	if store.Len() != 1 || store.Get(2) == nil {
		t.Errorf("expected only task 2 to survive, have %d tasks", store.Len())
	}
}

func TestDeleteNotFound(t *testing.T) {
	testDir(t)

	err := run(t, "delete", "3")
	var nf *task.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestMarkCommands(t *testing.T) {
	dir := testDir(t)

	if err := run(t, "add", "one"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "add", "two"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := run(t, "mark-in-progress", "1"); err != nil {
		t.Fatalf("mark-in-progress failed: %v", err)
	}
	if err := run(t, "mark-done", "2"); err != nil {
		t.Fatalf("mark-done failed: %v", err)
	}

	store := reload(t, dir)
	if got := store.Get(1).Status; got != task.StatusInProgress {
		t.Errorf("task 1 status: got %s, want in-progress", got)
	}
	if got := store.Get(2).Status; got != task.StatusDone {
		t.Errorf("task 2 status: got %s, want done", got)
	}

	// Explicit mark back to todo.
	if err := run(t, "mark", "2", "todo"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if got := reload(t, dir).Get(2).Status; got != task.StatusTodo {
		t.Errorf("task 2 status after mark: got %s, want todo", got)
	}
}

func TestMarkInvalidStatus(t *testing.T) {
	dir := testDir(t)

	if err := run(t, "add", "one"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	err := run(t, "mark", "1", "blocked")
	var inv *task.InvalidStatusError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}
	if got := reload(t, dir).Get(1).Status; got != task.StatusTodo {
		t.Errorf("prior status not preserved: got %s", got)
	}
}

func TestListCommand(t *testing.T) {
	testDir(t)

	// Listing an absent file is fine, the store is just empty.
	if err := run(t, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if err := run(t, "add", "one"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "list", "done"); err != nil {
		t.Fatalf("list done failed: %v", err)
	}
	if err := run(t, "list", "-status", "todo"); err != nil {
		t.Fatalf("list -status todo failed: %v", err)
	}
}

func TestListRejectsInvalidFilter(t *testing.T) {
	testDir(t)

	err := run(t, "list", "someday")
	var inv *task.InvalidStatusError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidStatusError, got %v", err)
	}
}

func TestListRejectsCorruptFile(t *testing.T) {
	dir := testDir(t)
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{oops"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	err := run(t, "list")
	var se *task.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestFileFlagOverridesDefault(t *testing.T) {
	dir := testDir(t)
	custom := filepath.Join(dir, "work.json")

	if err := run(t, "-file", custom, "add", "one"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := os.Stat(custom); err != nil {
		t.Errorf("expected %s to exist: %v", custom, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.json")); !os.IsNotExist(err) {
		t.Errorf("default task file should not exist, stat err = %v", err)
	}
}

func TestInitCommandCreatesFiles(t *testing.T) {
	dir := testDir(t)

	if err := run(t, "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	taskPath := filepath.Join(dir, "tasks.json")
	configPath := filepath.Join(dir, "taskman.toml")
	for _, path := range []string{taskPath, configPath} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}

	store := reload(t, dir)
	if store.Len() != 0 {
		t.Errorf("fresh task file should be empty, have %d tasks", store.Len())
	}

	// Running init again must not clobber existing files.
	if err := run(t, "add", "keep me"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := run(t, "init"); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if got := reload(t, dir).Len(); got != 1 {
		t.Errorf("init clobbered the task file, have %d tasks", got)
	}
}

func TestDoctorCommand(t *testing.T) {
	t.Run("passes on a healthy store", func(t *testing.T) {
		testDir(t)
		if err := run(t, "add", "one"); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := run(t, "doctor"); err != nil {
			t.Errorf("doctor failed on healthy store: %v", err)
		}
	})

	t.Run("passes with a missing task file", func(t *testing.T) {
		testDir(t)
		if err := run(t, "doctor"); err != nil {
			t.Errorf("doctor failed with missing file: %v", err)
		}
	})

	t.Run("fails on an unparseable task file", func(t *testing.T) {
		dir := testDir(t)
		if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{oops"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := run(t, "doctor"); err == nil {
			t.Error("expected doctor to fail on corrupt file")
		}
	})

	t.Run("fails on invalid records", func(t *testing.T) {
		dir := testDir(t)
		content := `[{"id":1,"description":"x","status":"blocked","created_at":"2026-08-24T10:00:00Z","updated_at":"2026-08-24T10:00:00Z"}]`
		if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := run(t, "doctor"); err == nil {
			t.Error("expected doctor to fail on invalid status")
		}
	})
}

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseTaskID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTaskID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTaskID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
