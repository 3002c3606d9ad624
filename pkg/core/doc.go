// Package core implements the build pipeline for dodist.
//
// A build is a straight line through the other packages:
//
//	rules.New -> planner.Plan -> executor.Run -> results.Aggregator
//
// PlanBuild stops after planning and performs no writes, which is what the
// plan command shows. Build runs the whole pipeline and returns a Report.
//
// # Roots
//
// Source and output roots are made absolute before anything else. When the
// output root sits inside the source root it is skipped during the walk, so
// a previous build is never fed into the next one. An output root equal to,
// or containing, the source root is refused before anything is removed.
//
// # Failures
//
// Per-file failures do not stop a build. They are collected in the report
// and surface as a single BUILD_FAILED error once every task has run.
package core
