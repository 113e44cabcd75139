// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"github.com/trueportme/adminconsole/internal/app/system/ratelimit"
	"github.com/trueportme/adminconsole/internal/app/system/tasks"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB (when configured), builds the API client
// and the in-memory registries.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	api, err := apiclient.New(apiclient.Config{
		BaseURL:      appCfg.APIBaseURL,
		Timeout:      appCfg.APITimeout,
		ClientID:     appCfg.APIClientID,
		ClientSecret: appCfg.APIClientSecret,
		TokenURL:     appCfg.APITokenURL,
	}, logger.Named("api"))
	if err != nil {
		return DBDeps{}, err
	}

	dir := namecache.New()
	views := viewstate.NewRegistry(appCfg.ViewStateTTL)
	views.SetDirectory(dir)

	deps := DBDeps{
		API:       api,
		Views:     views,
		Directory: dir,
		Limiter:   ratelimit.NewLoginLimiter(appCfg.LoginRatePerMinute),
		Scheduler: tasks.NewScheduler(logger),
	}

	if appCfg.MongoURI == "" {
		logger.Warn("mongo_uri is blank; audit events go to the log only")
		return deps, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	deps.MongoClient = client
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	deps.Audit = audit.New(deps.MongoDatabase)
	return deps, nil
}

// EnsureSchema creates the audit trail indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Audit == nil {
		return nil
	}
	if err := deps.Audit.EnsureIndexes(ctx); err != nil {
		logger.Error("audit index creation failed", zap.Error(err))
		return fmt.Errorf("ensure audit indexes: %w", err)
	}
	return nil
}
