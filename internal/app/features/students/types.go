// internal/app/features/students/types.go
package students

import (
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
)

type listItem struct {
	ID          string
	Name        string
	Email       string
	RollNumber  string
	Class       string
	Status      string
	KYCVerified bool
}

type listData struct {
	viewdata.BaseVM

	Path  string
	Page  listing.Page
	Items []listItem
}

type formData struct {
	formutil.Base

	ID     string
	Action string
	Submit string

	Name       string
	Email      string
	Phone      string
	RollNumber string
	Class      string
	Status     string
	City       string
	District   string
	State      string
	Pincode    string

	Statuses []string
}
