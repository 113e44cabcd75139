// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"go.uber.org/zap"
)

// AuditPurger deletes audit events older than a cutoff.
type AuditPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper drops idle in-memory state and reports how much went.
type Sweeper interface {
	Sweep() int
}

// DirectoryFetcher lists every verifier id and name.
type DirectoryFetcher interface {
	Directory(ctx context.Context) ([]namecache.Entry, error)
}

// AuditRetentionJob removes audit events older than retention, daily.
func AuditRetentionJob(store AuditPurger, retention time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "audit-retention",
		Schedule: "@daily",
		Run: func(ctx context.Context) error {
			n, err := store.DeleteOlderThan(ctx, time.Now().Add(-retention))
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("purged audit events",
					zap.Int64("count", n),
					zap.Duration("retention", retention))
			}
			return nil
		},
	}
}

// SweepJob runs s.Sweep every interval.
func SweepJob(name string, s Sweeper, interval time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     name,
		Schedule: "@every " + interval.String(),
		Run: func(context.Context) error {
			if n := s.Sweep(); n > 0 {
				logger.Debug("swept idle state", zap.String("task", name), zap.Int("count", n))
			}
			return nil
		},
	}
}

// VerifierDirectoryJob refreshes dir with every verifier name, using the
// service token, so new views start with names already known.
func VerifierDirectoryJob(src DirectoryFetcher, dir *namecache.Cache, logger *zap.Logger) Job {
	return Job{
		Name:     "verifier-directory",
		Schedule: "@every 15m",
		Run: func(ctx context.Context) error {
			entries, err := src.Directory(apiclient.AsService(ctx))
			if err != nil {
				return err
			}
			dir.RecordNames(entries...)
			logger.Debug("verifier directory refreshed", zap.Int("names", dir.Len()))
			return nil
		},
	}
}
