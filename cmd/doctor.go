package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/taskman/internal/config"
	"github.com/nibzard/taskman/internal/task"
)

// doctorCommand checks config and task file validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Taskman Doctor")
	fmt.Println("==============")
	fmt.Println()

	allOK := true

	// Check project root
	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Show config values and where they came from
	fmt.Println("Config:")
	fmt.Printf("  ✅ Task file: %s (%s)\n", cfg.TaskFile, cfg.Sources["task_file"])
	fmt.Printf("  ✅ Log level: %s (%s)\n", cfg.LogLevel, cfg.Sources["log_level"])
	fmt.Printf("  ✅ Log format: %s (%s)\n", cfg.LogFormat, cfg.Sources["log_format"])
	fmt.Println()

	// Check task file
	fmt.Printf("Task file: %s\n", cfg.TaskFile)
	info, err := os.Stat(cfg.TaskFile)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on first add)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		store, loadErr := task.Open(cfg.TaskFile)
		if loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
			break
		}

		result := store.Validate()
		for _, w := range result.Warnings {
			fmt.Printf("  ⚠️  %s\n", w)
		}
		if result.Valid {
			fmt.Println("  ✅ Valid")
		} else {
			fmt.Println("  ❌ Validation failed:")
			for _, e := range result.Errors {
				fmt.Printf("     - %v\n", e)
			}
			allOK = false
		}

		if *verbose {
			fmt.Printf("  Tasks: %d\n", store.Len())
			for _, status := range task.Statuses() {
				fmt.Printf("    %s: %d\n", status, len(store.List(status)))
			}
		}
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Taskman may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}
