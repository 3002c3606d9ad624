// Package types defines the core types and interfaces used throughout dodist.
// This includes the FS interface every component reads and writes through,
// and the value types that flow from the planner to the executor: Task, Plan,
// Skip and TaskResult.
package types
