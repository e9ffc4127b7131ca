// Package files discovers seat datasets on disk.
//
// Discovery filters by extension and expands command line arguments:
// directories are listed, glob patterns are matched, and plain paths are
// passed through untouched.
//
//	discovery := files.NewDiscovery([]string{".csv", ".xlsx"}, logger)
//	paths, err := discovery.Expand([]string{"data/", "archive/pgcet_*.csv"})
package files
