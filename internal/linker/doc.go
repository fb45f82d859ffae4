// Package linker is the core of the tool: it materializes a target
// package's declared dependency graph as a farm of relative symlinks under
// its modules directory (Setup), removes exactly those artifacts again
// (Teardown), and offers side-effect-free views of both (BuildPlan,
// Inventory). Recursion breaks cycles per branch and deduplicates link
// creation per pass while always completing the transitive closure.
package linker
