// internal/app/features/dashboard/common.go
package dashboard

import (
	"errors"

	"github.com/trueportme/adminconsole/internal/app/store/stats"
	"github.com/trueportme/adminconsole/internal/app/system/tabnav"
	"github.com/trueportme/adminconsole/internal/app/system/viewdata"
	"github.com/trueportme/adminconsole/internal/domain/models"
)

// hostPath is the page hosting the dashboard sections and sub-targets.
const hostPath = "/dashboard"

// Common section names.
const (
	sectionOverview = "overview"
	sectionSettings = "settings"
)

// roleDashboard is the section set and overview counters of one role.
type roleDashboard struct {
	Title    string
	Sections tabnav.Sections
	Labels   map[tabnav.Section]string
	Counters []stats.Counter
}

// tab is one entry of the dashboard tab bar.
type tab struct {
	Name   string
	Label  string
	Active bool
}

// sectionData is the view model of one rendered section.
type sectionData struct {
	viewdata.BaseVM

	Active  string
	Tabs    []tab
	Cards   []card
	Stale   bool
	Profile models.Profile

	// Link is the full page of a list section.
	Link string
}

// card is one figure and the page that lists what it counts.
type card struct {
	models.Stat
	Path string
}

var errSuperseded = errors.New("dashboard: superseded by a newer section request")

func (d roleDashboard) tabs(active tabnav.Section) []tab {
	all := d.Sections.All()
	out := make([]tab, 0, len(all))
	for _, s := range all {
		out = append(out, tab{Name: string(s), Label: d.Labels[s], Active: s == active})
	}
	return out
}

// counter returns the overview counter backing section s.
func (d roleDashboard) counter(s tabnav.Section) (stats.Counter, bool) {
	for _, c := range d.Counters {
		if c.Key == string(s) {
			return c, true
		}
	}
	return stats.Counter{}, false
}
