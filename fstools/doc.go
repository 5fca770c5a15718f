// Package fstools provides concurrent bulk filesystem operations.
//
// Walk lists a directory, probes every child concurrently and recurses into
// subdirectories, handing each matching non-directory entry to a visitor:
//
//	err := fstools.Walk(ctx, "/srv/data", fstools.Suffix(".log"),
//		func(ctx context.Context, path string, st fstools.EntryStat) error {
//			fmt.Println(path, st.Size)
//			return nil
//		})
//
// Remove, Copy, Move and MakeDirs are built on the same per-level join: a
// directory completes only after every entry below it has, and the call returns
// nil or the first error observed. None of them are transactional.
//
//	opts := fstools.NewOptions()
//	opts.Concurrency = 16
//	opts.Verify = true
//	err := fstools.CopyWithOptions(ctx, "/srv/data", "/backup/data", opts)
//
// Each concurrent operation has a blocking counterpart (WalkSync, RemoveSync,
// MakeDirsSync) that performs one filesystem call at a time.
package fstools
