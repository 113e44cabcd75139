// internal/app/features/events/awards.go
package events

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/trueportme/adminconsole/internal/app/store/audit"
	"github.com/trueportme/adminconsole/internal/app/system/formutil"
	"github.com/trueportme/adminconsole/internal/app/system/listing"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"github.com/trueportme/adminconsole/internal/app/system/timeouts"
	"github.com/trueportme/adminconsole/internal/app/system/viewstate"
	"github.com/trueportme/adminconsole/internal/domain/models"
	"go.uber.org/zap"
)

// maxRanks is the number of award places offered on the form.
const maxRanks = 5

type awardSlot struct {
	Rank        int
	StudentID   string
	StudentName string
	Title       string
}

type awardsData struct {
	formutil.Base

	EventID    string
	EventTitle string
	Slots      []awardSlot
	Students   []namecache.Entry
}

func awardsPath(eventID string) string { return "/events/" + eventID + "/awards" }

// studentChoices lists the institution's students and records their names
// in the view's cache.
func (h *Handler) studentChoices(ctx context.Context, view *viewstate.View) []namecache.Entry {
	if h.Students == nil {
		return nil
	}
	recs, err := h.Students.List(ctx)
	if err != nil {
		h.Log.Warn("student choices unavailable", zap.Error(err))
		return nil
	}
	out := make([]namecache.Entry, 0, len(recs))
	for _, rec := range recs {
		e := namecache.EntryFrom(rec, "")
		if e.ID == "" {
			continue
		}
		out = append(out, e)
	}
	view.Names().RecordNames(out...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// slots lays rankings out over the fixed number of places.
func slots(names *namecache.Cache, rankings []models.AwardRanking) []awardSlot {
	out := make([]awardSlot, maxRanks)
	for i := range out {
		out[i].Rank = i + 1
	}
	for _, a := range rankings {
		if a.Rank < 1 || a.Rank > maxRanks {
			continue
		}
		s := &out[a.Rank-1]
		s.StudentID = a.StudentID
		s.Title = a.Title
		if a.StudentID != "" {
			s.StudentName = names.ResolveName(a.StudentID, "")
		}
	}
	return out
}

// readRankings parses the award form. A place with no student is skipped;
// a student may hold only one place.
func readRankings(r *http.Request) ([]models.AwardRanking, string) {
	var out []models.AwardRanking
	seen := map[string]int{}
	for rank := 1; rank <= maxRanks; rank++ {
		n := strconv.Itoa(rank)
		sid := formutil.Trimmed(r, "student_"+n)
		if sid == "" {
			continue
		}
		if prev, dup := seen[sid]; dup {
			return nil, "The same student cannot hold places " + strconv.Itoa(prev) + " and " + n + "."
		}
		seen[sid] = rank
		out = append(out, models.AwardRanking{Rank: rank, StudentID: sid, Title: formutil.Trimmed(r, "title_"+n)})
	}
	return out, ""
}

func (h *Handler) loadAwards(w http.ResponseWriter, r *http.Request) (awardsData, bool) {
	id := chi.URLParam(r, "id")
	view := listing.ViewFor(h.Views, r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Read(), h.Log, "event awards")
	defer cancel()

	ev, err := h.Store.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogAPIError(w, r, "get event failed", err, "/events")
		return awardsData{}, false
	}
	data := awardsData{EventID: id, EventTitle: ev.Title}
	formutil.SetBase(&data.Base, r, "Awards: "+ev.Title, "/events/"+id)
	data.Students = h.studentChoices(ctx, view)

	rankings, err := h.Store.Awards(ctx, id)
	if err != nil {
		h.Log.Warn("event awards fetch failed", zap.String("event_id", id), zap.Error(err))
		data.SetError("Could not load the current awards. Please try again.")
	}
	data.Slots = slots(view.Names(), rankings)
	return data, true
}

// ServeAwards shows the award rankings form.
//
// Route: GET /events/{id}/awards
func (h *Handler) ServeAwards(w http.ResponseWriter, r *http.Request) {
	data, ok := h.loadAwards(w, r)
	if !ok {
		return
	}
	templates.Render(w, r, "event_awards", data)
}

// HandleAwards replaces the event's award rankings.
//
// Route: POST /events/{id}/awards
func (h *Handler) HandleAwards(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", awardsPath(id))
		return
	}
	rankings, msg := readRankings(r)
	if msg != "" {
		h.awardsError(w, r, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Write(), h.Log, "assign awards")
	defer cancel()

	if err := h.Store.AssignAwards(ctx, id, rankings); err != nil {
		h.Audit.ActionFailed(ctx, r, audit.EventAwardsAssigned, "event", id, err)
		h.ErrLog.LogAPIError(w, r, "assign awards failed", err, awardsPath(id))
		return
	}
	h.Audit.Action(ctx, r, audit.EventAwardsAssigned, "event", id, map[string]string{"places": strconv.Itoa(len(rankings))})
	h.flash(w, r, "Awards saved.")

	http.Redirect(w, r, "/events/"+id, http.StatusSeeOther)
}

func (h *Handler) awardsError(w http.ResponseWriter, r *http.Request, msg string) {
	data, ok := h.loadAwards(w, r)
	if !ok {
		return
	}
	names := listing.ViewFor(h.Views, r).Names()
	for i := range data.Slots {
		n := strconv.Itoa(data.Slots[i].Rank)
		sid := formutil.Trimmed(r, "student_"+n)
		data.Slots[i].StudentID = sid
		data.Slots[i].StudentName = ""
		if sid != "" {
			data.Slots[i].StudentName = names.ResolveName(sid, "")
		}
		data.Slots[i].Title = formutil.Trimmed(r, "title_"+n)
	}
	data.SetError(msg)
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "event_awards", data)
}
