// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/trueportme/adminconsole/internal/app/resources"
	"github.com/trueportme/adminconsole/internal/app/store/verifiers"
	"github.com/trueportme/adminconsole/internal/app/system/tasks"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"go.uber.org/zap"
)

const siteName = "TruePortMe Admin"

// Startup loads the shared templates and starts the background tasks.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(siteName)

	for _, j := range backgroundJobs(appCfg, deps, logger) {
		if err := deps.Scheduler.Add(j); err != nil {
			return err
		}
	}

	// Warm the verifier directory before the first request.
	if deps.API.HasServiceToken() {
		if err := deps.Scheduler.RunNow(verifierDirectoryJob); err != nil {
			return err
		}
	}

	deps.Scheduler.Start()
	return nil
}

const verifierDirectoryJob = "verifier-directory"

func backgroundJobs(appCfg AppConfig, deps DBDeps, logger *zap.Logger) []tasks.Job {
	sweepEvery := appCfg.ViewStateTTL / 4
	if sweepEvery < time.Minute {
		sweepEvery = time.Minute
	}
	jobs := []tasks.Job{
		tasks.SweepJob("view-state-sweep", deps.Views, sweepEvery, logger),
		tasks.SweepJob("login-limiter-sweep", deps.Limiter, 10*time.Minute, logger),
	}
	if deps.Audit != nil && appCfg.AuditRetentionDays > 0 {
		retention := time.Duration(appCfg.AuditRetentionDays) * 24 * time.Hour
		jobs = append(jobs, tasks.AuditRetentionJob(deps.Audit, retention, logger))
	}
	if deps.API != nil && deps.API.HasServiceToken() {
		jobs = append(jobs, tasks.VerifierDirectoryJob(verifiers.New(deps.API), deps.Directory, logger))
	}
	return jobs
}
