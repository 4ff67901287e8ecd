// Package task loads, mutates, and persists the task file.
//
// The task file (tasks.json) is a flat JSON array of task records:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "buy milk",
//	    "status": "todo",
//	    "created_at": "2026-08-24T10:00:00Z",
//	    "updated_at": "2026-08-24T10:00:00Z"
//	  }
//	]
//
// The file is read in full at startup and rewritten in full after every
// mutation, via a temp file and rename in the same directory.
//
// # Validation
//
// The package supports two validation modes:
//
// 1. JSON Schema validation against the bundled tasks.schema.json
// (draft-2020-12), plus an ID-uniqueness check the schema cannot express.
//
// 2. Minimal fallback validation when the bundled schema cannot be compiled:
// positive IDs, enumerated statuses, timestamp presence, ID uniqueness.
//
// # Task Status Values
//
//   - "todo": task is pending
//   - "in-progress": task is currently being worked on
//   - "done": task is complete
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
package task
