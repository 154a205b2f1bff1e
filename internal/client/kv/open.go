package kv

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskdesk/internal/filex"
)

const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// Open returns the store selected by driver; path is the SQLite file or
// the Badger directory. Missing parent directories are created.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case "", DriverSQLite:
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, path)
	case DriverBadger:
		if err := filex.EnsureDir(path); err != nil {
			return nil, err
		}
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
