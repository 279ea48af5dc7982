// Package fs provides filesystem abstractions for testability and fault injection.
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that injects write, sync and close failures
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".msp", fs.Fault{FailAfterBytes: 16})
//	ffs.AddRule(".json", fs.Fault{FailOnSync: true, Times: 1})
//	// inject ffs into component under test
//
// The package does not take context.Context. Local filesystem calls are
// not interruptible at the syscall level.
package fs
