// internal/app/features/institutions/types.go
package institutions

import (
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
)

// listItem is a single row in the institutions list.
type listItem struct {
	ID          string
	Name        string
	Type        string
	Status      string
	District    string
	State       string
	Claimed     bool
	KYCVerified bool
}

// listData is the view model for the institutions list page.
type listData struct {
	viewdata.BaseVM

	Path  string
	Page  listing.Page
	Items []listItem
}

// formData is the view model for the new and edit pages.
type formData struct {
	formutil.Base

	ID     string
	Action string
	Submit string

	Name        string
	Type        string
	Status      string
	Email       string
	Phone       string
	Website     string
	Description string
	Line1       string
	City        string
	District    string
	State       string
	Pincode     string

	Types    []string
	Statuses []string
}
