package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/recruiting-analytics/internal/model"
)

// ReadFiles parses every given file concurrently, dispatching on extension
// (.csv or .xlsx), and returns the concatenated records. Order across files
// is not guaranteed; the engine does not depend on record order.
func ReadFiles(ctx context.Context, paths []string) ([]model.ActivityRecord, error) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)

	var mu sync.Mutex
	var all []model.ActivityRecord

	for _, path := range paths {
		g.Go(func() error {
			records, err := ReadFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, records...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// ReadFile parses a single CSV or XLSX file.
func ReadFile(path string) ([]model.ActivityRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "loader: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Errorf("loader: unsupported file type %s", path)
	}
}
