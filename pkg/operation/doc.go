/*
Package operation implements the mjc commands over a tree of source files.

	+------------+     +-------------+     +-----------+
	| Discoverer |---->| Transformer |---->|   Files   |
	| (src/**)   |     | (src->lib)  |     | (copy/rm) |
	+------------+     +-------------+     +-----------+
	        \                                   /
	         +------------> Summary <----------+
	                           |
	                     OperationRunner
	                    (failure policy)

🎯 Operations:
  - build: creates the lib root, then copies every source to its destination
  - status: compares sources with their destinations without writing
  - clean: removes the destinations of the current sources and prunes empty directories

🔄 Flow:
 1. Discover source paths relative to the working directory
 2. Fan out one task per path, at most Config.Concurrency at a time (0 means no limit)
 3. Each task maps its path and does its file work on its own; a failure never stops
    the others
 4. Outcomes are collected in discovery order into a Summary

Only failures that stop the run before any file is touched (the lib root cannot be
created, discovery fails) are returned as errors from Execute. Per-file failures live in
Summary.Err, and OperationRunner decides whether they fail the run:

	op, err := operation.NewBuildOperation(operation.Options{Config: cfg, Console: console})
	summary, err := operation.NewRunner(cfg.Policy(), console).Run(ctx, op)

Successful copies are never rolled back and nothing is retried.
*/
package operation
