// internal/app/system/listing/view.go
package listing

import (
	"net/http"

	"github.com/trueportme/adminconsole/internal/app/system/auth"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
)

// ViewFor returns the view state of the signed-in user's session.
// Requests without a view id share one view per user id.
func ViewFor(reg *viewstate.Registry, r *http.Request) *viewstate.View {
	id := "anonymous"
	if u, ok := auth.CurrentUser(r); ok {
		switch {
		case u.ViewID != "":
			id = u.ViewID
		case u.ID != "":
			id = "user:" + u.ID
		}
	}
	return reg.Get(id)
}
