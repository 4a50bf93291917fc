// Package lib provides a Go SDK for managing a compassq priority matrix
// programmatically.
//
// The board sorts tasks into four quadrants by importance and urgency, a task
// is urgent when it is due within 24 hours. Every quadrant accepts at most
// [Capacity] active tasks. This package allows applications to manage the
// board without shelling out to the compassq CLI binary.
//
// # Quick Start
//
// Create a client, add tasks and complete them:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	task, err := client.CreateTask(ctx, lib.CreateTaskOpts{
//	    Title:     "Write the quarterly report",
//	    Important: true,
//	    Hours:     72,
//	})
//
//	client.CompleteTask(ctx, task.ID)
//	client.RestoreTask(ctx, task.ID)
//
// # Storage
//
// The board is loaded by [New] and saved by [Client.Save], [Client.Run] and
// [Client.Close]. Select the backend with [Config].Storage:
//
//   - [StorageSQLite]: local SQLite database (default, ~/.compassq/compassq.db).
//   - [StorageRedis]: a JSON document in a Redis key, shareable between hosts.
//   - [StorageFile]: a JSON or YAML file.
//   - [StorageMemory]: nothing is persisted, useful for tests.
//
// # Moving Tasks
//
// A move takes the importance of the destination quadrant. When it also
// changes the urgency, new hours are needed: they come from
// [MoveTaskOpts].Hours or from the configured [HoursPrompter]:
//
//	hours := 4.0
//	client.MoveTask(ctx, task.ID, lib.QuadrantUrgentImportant, 0, &lib.MoveTaskOpts{Hours: &hours})
//
// # Time
//
// Tasks become urgent as time passes. [New] classifies the board again when it
// is loaded, and [Client.Run] keeps it classified while it blocks:
//
//	go client.Run(ctx)
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Task does not exist.
//   - [ErrNotValid]: Invalid input (e.g. an empty title or negative hours).
//   - [ErrCapacityExceeded]: The destination quadrant is full.
//   - [ErrCancelled]: The hours question of a move was declined.
//
// Operations on an unknown id are ignored: they return a nil task and no error.
// Rejected operations also send a message to the configured [Notifier].
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines.
package lib
