package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskman/internal/config"
	"github.com/nibzard/taskman/internal/render"
	"github.com/nibzard/taskman/internal/shell"
	"github.com/nibzard/taskman/internal/task"
	"github.com/nibzard/taskman/internal/ui"
)

// openStore loads the task store from the configured path.
func openStore(cfg *config.Config) (*task.Store, error) {
	return task.Open(cfg.TaskFile)
}

// saveStore persists the store and logs the write.
func saveStore(store *task.Store, logger *log.Logger) error {
	if err := store.Save(); err != nil {
		return err
	}
	logger.Debug("saved task file", "path", store.Path(), "tasks", store.Len())
	return nil
}

// addCommand creates a new task from the remaining arguments.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman add", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	description := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if description == "" {
		return fmt.Errorf("add requires a task description")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	t := store.Add(description)
	if err := saveStore(store, logger); err != nil {
		return err
	}

	render.Added(os.Stdout, t.ID)
	return nil
}

// updateCommand replaces a task's description.
func updateCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman update", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) < 2 {
		return fmt.Errorf("usage: taskman update <id> \"new description\"")
	}
	id, err := parseTaskID(remaining[0])
	if err != nil {
		return err
	}
	description := strings.TrimSpace(strings.Join(remaining[1:], " "))
	if description == "" {
		return fmt.Errorf("update requires a new description")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if _, err := store.Update(id, description); err != nil {
		return err
	}
	if err := saveStore(store, logger); err != nil {
		return err
	}

	render.Updated(os.Stdout, id)
	return nil
}

// deleteCommand removes a task.
func deleteCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman delete", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("usage: taskman delete <id>")
	}
	id, err := parseTaskID(remaining[0])
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if err := store.Delete(id); err != nil {
		return err
	}
	if err := saveStore(store, logger); err != nil {
		return err
	}

	render.Deleted(os.Stdout, id)
	return nil
}

// markCommand sets a task's status from an explicit argument.
func markCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman mark", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 2 {
		return fmt.Errorf("usage: taskman mark <id> <todo|in-progress|done>")
	}
	id, err := parseTaskID(remaining[0])
	if err != nil {
		return err
	}
	status, err := task.ParseStatus(remaining[1])
	if err != nil {
		return err
	}

	return applyMark(cfg, logger, id, status)
}

// markStatusCommand backs the mark-in-progress and mark-done shortcuts.
func markStatusCommand(cfg *config.Config, logger *log.Logger, args []string, status task.Status) error {
	fs := flag.NewFlagSet("taskman mark-"+string(status), flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("usage: taskman mark-%s <id>", markSuffix(status))
	}
	id, err := parseTaskID(remaining[0])
	if err != nil {
		return err
	}

	return applyMark(cfg, logger, id, status)
}

func applyMark(cfg *config.Config, logger *log.Logger, id int, status task.Status) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if _, err := store.MarkStatus(id, status); err != nil {
		return err
	}
	if err := saveStore(store, logger); err != nil {
		return err
	}

	render.Marked(os.Stdout, id, status)
	return nil
}

func markSuffix(status task.Status) string {
	if status == task.StatusDone {
		return "done"
	}
	return "in-progress"
}

// listCommand prints tasks in creation order, optionally filtered by status.
func listCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman list", flag.ContinueOnError)
	statusFilter := fs.String("status", "", "Filter by status (todo|in-progress|done)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) >= 1 && *statusFilter == "" {
		*statusFilter = remaining[0]
		remaining = remaining[1:]
	}
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	filter := task.Status("")
	if *statusFilter != "" {
		parsed, err := task.ParseStatus(*statusFilter)
		if err != nil {
			return err
		}
		filter = parsed
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	render.Table(os.Stdout, store.List(filter), filter)
	return nil
}

// shellCommand starts the interactive shell.
func shellCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	return shell.New(store, logger).Run(ctx)
}

// tuiCommand launches the terminal UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	return ui.RunTUI(ctx, cfg.TaskFile)
}

// initCommand creates an empty task file and an example project config.
// Existing files are left alone.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman init", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if _, err := os.Stat(cfg.TaskFile); os.IsNotExist(err) {
		store, err := task.Open(cfg.TaskFile)
		if err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Printf("Created %s\n", cfg.TaskFile)
	} else {
		fmt.Printf("Task file already exists: %s\n", cfg.TaskFile)
	}

	configPath := filepath.Join(cfg.ProjectRoot, "taskman.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0644); err != nil {
			return fmt.Errorf("writing example config: %w", err)
		}
		fmt.Printf("Created %s\n", configPath)
	} else {
		fmt.Printf("Config file already exists: %s\n", configPath)
	}

	return nil
}

// parseTaskID parses a positive integer task ID from a CLI argument.
func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task ID %q, expected a positive number", s)
	}
	return id, nil
}
