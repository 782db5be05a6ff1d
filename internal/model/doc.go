// Package model defines the tracked entities and their mapping form.
//
// Three record types are persisted: User, Project, and Task. Each carries a
// positive integer id that is unique per type. Ids come from a Sequence
// owned by the caller (normally the store), so two stores in one process
// never share counters.
//
// # Mapping form
//
// Every entity converts to and from a plain map[string]any whose keys are
// the persisted field names:
//
//	user:    id, name, email, project_ids
//	project: id, title, description, due_date, owner_id, task_ids
//	task:    id, title, status, assigned_to, project_id
//
// Optional fields are nil in the map when unset. FromMap accepts loosely
// typed input (JSON numbers, json.Number, Go ints) and substitutes defaults
// for anything missing.
//
// # References
//
// Task.ProjectID, Task.AssignedTo and Project.OwnerID are weak references.
// Zero means "no reference". A non-zero value may point at a record that no
// longer exists; callers render those as unknown instead of failing.
package model
