// Package fs abstracts the file operations of blobstore.LocalStore so tests
// can inject I/O failures.
//
// Production code uses Default (LocalFS). Tests wrap it in a FaultyFS:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("0_0_0_31_31_31", fs.Fault{FailAfterBytes: -1, FailOnRename: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
//
// Operations take no context: local file calls are not interruptible.
package fs
