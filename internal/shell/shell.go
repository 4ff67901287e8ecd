// Package shell implements the interactive task shell.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskman/internal/render"
	"github.com/nibzard/taskman/internal/task"
)

const prompt = "(task) "

const banner = `🗒️  Welcome to Task Manager! 🗒️
Type 'help' to list commands.
Type 'quit' to exit.`

// Shell reads task commands line by line from In, applies them to the
// store, and writes results to Out. The store is persisted after every
// mutating command so state survives across shell exit and restart.
type Shell struct {
	Store *task.Store
	In    io.Reader
	Out   io.Writer
	Log   *log.Logger
}

// New constructs a Shell over the given store, reading stdin and writing stdout.
func New(store *task.Store, logger *log.Logger) *Shell {
	return &Shell{Store: store, In: os.Stdin, Out: os.Stdout, Log: logger}
}

// Run starts the interactive loop. It returns when the user quits, input
// reaches EOF, or ctx is cancelled between commands.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.Out, banner)

	scanner := bufio.NewScanner(s.In)
	for {
		fmt.Fprint(s.Out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.Out)
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		quit, err := s.dispatch(line)
		if err != nil {
			render.Error(s.Out, err)
		}
		if quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Fprintln(s.Out, "Goodbye! 👋")
	return nil
}

// dispatch parses and executes one command line. It returns true when the
// shell should exit.
func (s *Shell) dispatch(line string) (bool, error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "add":
		return false, s.add(rest)
	case "update":
		return false, s.update(rest)
	case "delete":
		return false, s.delete(rest)
	case "mark":
		return false, s.mark(rest)
	case "progress":
		return false, s.markShortcut(rest, task.StatusInProgress)
	case "done":
		return false, s.markShortcut(rest, task.StatusDone)
	case "list", "ls":
		return false, s.list(rest)
	case "help":
		s.help()
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", name)
	}
}

func (s *Shell) add(rest string) error {
	desc := description(rest)
	if desc == "" {
		return fmt.Errorf("add requires a task description")
	}

	t := s.Store.Add(desc)
	if err := s.save(); err != nil {
		return err
	}
	render.Added(s.Out, t.ID)
	return nil
}

func (s *Shell) update(rest string) error {
	args, err := splitArgs(rest)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: update <id> \"new description\"")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if _, err := s.Store.Update(id, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	render.Updated(s.Out, id)
	return nil
}

func (s *Shell) delete(rest string) error {
	id, err := parseID(strings.TrimSpace(rest))
	if err != nil {
		return err
	}

	if err := s.Store.Delete(id); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	render.Deleted(s.Out, id)
	return nil
}

func (s *Shell) mark(rest string) error {
	args, err := splitArgs(rest)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: mark <id> <todo|in-progress|done>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status, err := task.ParseStatus(args[1])
	if err != nil {
		return err
	}

	return s.applyMark(id, status)
}

func (s *Shell) markShortcut(rest string, status task.Status) error {
	id, err := parseID(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	return s.applyMark(id, status)
}

func (s *Shell) applyMark(id int, status task.Status) error {
	if _, err := s.Store.MarkStatus(id, status); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	render.Marked(s.Out, id, status)
	return nil
}

func (s *Shell) list(rest string) error {
	args, err := splitArgs(rest)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("usage: list [status]")
	}

	filter := task.Status("")
	if len(args) == 1 {
		parsed, err := task.ParseStatus(args[0])
		if err != nil {
			return err
		}
		filter = parsed
	}

	render.Table(s.Out, s.Store.List(filter), filter)
	return nil
}

func (s *Shell) help() {
	fmt.Fprintln(s.Out, "Commands:")
	fmt.Fprintln(s.Out, "  add <description>        Add a new task")
	fmt.Fprintln(s.Out, "  update <id> <description> Update a task description")
	fmt.Fprintln(s.Out, "  delete <id>              Delete a task")
	fmt.Fprintln(s.Out, "  mark <id> <status>       Set status (todo|in-progress|done)")
	fmt.Fprintln(s.Out, "  progress <id>            Mark a task as in-progress")
	fmt.Fprintln(s.Out, "  done <id>                Mark a task as done")
	fmt.Fprintln(s.Out, "  list [status]            List tasks, optionally filtered")
	fmt.Fprintln(s.Out, "  help                     Show this help")
	fmt.Fprintln(s.Out, "  quit | exit | q          Exit the shell")
}

func (s *Shell) save() error {
	if err := s.Store.Save(); err != nil {
		return err
	}
	if s.Log != nil {
		s.Log.Debug("saved task file", "path", s.Store.Path(), "tasks", s.Store.Len())
	}
	return nil
}

// description interprets the remainder of an add line. A single quoted
// token is unwrapped; anything else is taken verbatim, so both
// `add "buy milk"` and `add buy milk` work.
func description(rest string) string {
	if args, err := splitArgs(rest); err == nil && len(args) == 1 {
		return args[0]
	}
	return strings.TrimSpace(rest)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task ID %q, expected a positive number", s)
	}
	return id, nil
}
