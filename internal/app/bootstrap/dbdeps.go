// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"github.com/trueportme/adminconsole/internal/app/system/ratelimit"
	"github.com/trueportme/adminconsole/internal/app/system/tasks"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backends and long-lived in-memory state shared by
// every request.
type DBDeps struct {
	// Mongo is nil when mongo_uri is blank; the audit trail then goes to
	// the log only.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Audit         *audit.Store

	API *apiclient.Client

	// Views holds per-session view state; Directory seeds each new view's
	// name cache with every verifier name.
	Views     *viewstate.Registry
	Directory *namecache.Cache

	Limiter   *ratelimit.LoginLimiter
	Scheduler *tasks.Scheduler
}
