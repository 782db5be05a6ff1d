// Package store loads and saves the tracker dataset.
//
// The dataset lives in a single JSON document:
//
//	{
//	  "users":    [{"id": 1, "name": "Alice", "email": null, "project_ids": [1]}],
//	  "projects": [{"id": 1, "title": "Launch", "description": "", "due_date": "2030-01-31", "owner_id": 1, "task_ids": [1]}],
//	  "tasks":    [{"id": 1, "title": "Design", "status": "open", "assigned_to": 1, "project_id": 1}]
//	}
//
// # Loading
//
// Load never fails. A missing file is an empty dataset. A file that cannot
// be read, is not JSON, or does not match the embedded JSON Schema is also
// treated as empty, and the cause is logged at warn level. Id counters are
// reset and seeded from the ids seen in the file.
//
// # Saving
//
// Save rewrites the whole document. It writes a temporary file next to the
// target and renames it into place, so readers see either the old or the
// new document. There is no locking; the last writer wins.
//
// # Back-references
//
// Task.ProjectID and Project.OwnerID are authoritative. Project.TaskIDs and
// User.ProjectIDs are recomputed from them after every load and before every
// save.
package store
