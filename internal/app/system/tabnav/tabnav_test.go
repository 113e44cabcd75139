package tabnav_test

import (
	"sync"
	"testing"

	"github.com/trueportme/adminconsole/internal/app/system/tabnav"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var superAdmin = tabnav.NewSections("overview", "institutions", "admins", "claims", "settings")

func TestResolve_Recognized(t *testing.T) {
	for _, s := range superAdmin.All() {
		if got := superAdmin.Resolve(string(s)); got != s {
			t.Errorf("Resolve(%q) = %q", s, got)
		}
	}
}

func TestResolve_FallsBackToDefault(t *testing.T) {
	for _, f := range []string{
		"",
		"bogus",
		"#institutions",
		"institutions#admins",
		"Institutions",
		" institutions",
		"overview/",
		"#",
		"\x00",
	} {
		if got := superAdmin.Resolve(f); got != "overview" {
			t.Errorf("Resolve(%q) = %q, want overview", f, got)
		}
	}
}

func TestNewSections_DropsEmptyAndDuplicates(t *testing.T) {
	s := tabnav.NewSections("", "a", "b", "a", "")
	if got := s.All(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("All() = %v", got)
	}
	if s.Default() != "a" {
		t.Errorf("Default() = %q", s.Default())
	}

	var zero tabnav.Sections
	if zero.Resolve("x") != "" {
		t.Errorf("zero Sections should resolve to empty")
	}
}

func TestSelector_ScenarioB(t *testing.T) {
	loc := tabnav.NewMemoryLocation("/dashboard#institutions")
	sel := tabnav.NewSelector(superAdmin, loc)
	defer sel.Close()

	if got := sel.Active(); got != "institutions" {
		t.Errorf("Active() = %q, want institutions", got)
	}
}

func TestSelector_ScenarioC(t *testing.T) {
	loc := tabnav.NewMemoryLocation("/dashboard#bogus")
	sel := tabnav.NewSelector(superAdmin, loc)
	defer sel.Close()

	if got := sel.Active(); got != "overview" {
		t.Errorf("Active() = %q, want overview", got)
	}
}

func TestSelector_SelectRoundTrip(t *testing.T) {
	for _, s := range superAdmin.All() {
		loc := tabnav.NewMemoryLocation("/dashboard")
		sel := tabnav.NewSelector(superAdmin, loc)

		sel.Select(string(s))
		if loc.Fragment() != string(s) {
			t.Errorf("after Select(%q) fragment = %q", s, loc.Fragment())
		}

		again := tabnav.NewSelector(superAdmin, tabnav.NewMemoryLocation(loc.URL()))
		if again.Active() != s {
			t.Errorf("round trip of %q gave %q", s, again.Active())
		}
		again.Close()
		sel.Close()
	}
}

func TestSelector_FollowsExternalChanges(t *testing.T) {
	loc := tabnav.NewMemoryLocation("/dashboard")
	var seen []tabnav.Section
	sel := tabnav.NewSelector(superAdmin, loc, tabnav.OnChange(func(s tabnav.Section) {
		seen = append(seen, s)
	}))
	defer sel.Close()

	loc.SetFragment("claims")
	if sel.Active() != "claims" {
		t.Fatalf("Active() = %q, want claims", sel.Active())
	}

	sel.Select("admins")
	if sel.Active() != "admins" {
		t.Fatalf("Active() = %q, want admins", sel.Active())
	}

	// back button: admins -> claims -> (empty)
	loc.Back()
	if sel.Active() != "claims" {
		t.Errorf("after Back Active() = %q, want claims", sel.Active())
	}
	loc.Back()
	if sel.Active() != "overview" {
		t.Errorf("after second Back Active() = %q, want overview", sel.Active())
	}
	if loc.Back() {
		t.Errorf("Back should report false with empty history")
	}

	loc.SetFragment("nonsense")
	if sel.Active() != "overview" {
		t.Errorf("unknown fragment: Active() = %q, want overview", sel.Active())
	}

	want := []tabnav.Section{"claims", "admins", "claims", "overview"}
	if len(seen) != len(want) {
		t.Fatalf("OnChange calls = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("OnChange[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestSelector_SelectUnknownPicksDefault(t *testing.T) {
	loc := tabnav.NewMemoryLocation("/dashboard#claims")
	sel := tabnav.NewSelector(superAdmin, loc)
	defer sel.Close()

	if got := sel.Select("nope"); got != "overview" {
		t.Errorf("Select(nope) = %q", got)
	}
	if loc.Fragment() != "overview" {
		t.Errorf("fragment = %q, want overview", loc.Fragment())
	}
}

func TestSelector_CloseUnsubscribes(t *testing.T) {
	loc := tabnav.NewMemoryLocation("/dashboard")
	sel := tabnav.NewSelector(superAdmin, loc)
	other := tabnav.NewSelector(superAdmin, loc)
	defer other.Close()

	if loc.Subscribers() != 2 {
		t.Fatalf("Subscribers() = %d, want 2", loc.Subscribers())
	}

	sel.Close()
	sel.Close()
	if loc.Subscribers() != 1 {
		t.Errorf("after Close Subscribers() = %d, want 1", loc.Subscribers())
	}

	loc.SetFragment("admins")
	if sel.Active() != "overview" {
		t.Errorf("closed selector moved to %q", sel.Active())
	}
	if other.Active() != "admins" {
		t.Errorf("open selector did not follow: %q", other.Active())
	}
}

func TestSubTargets_ScenarioF(t *testing.T) {
	loc := tabnav.NewMemoryLocation("/dashboard#settings")
	sel := tabnav.NewSelector(superAdmin, loc)
	defer sel.Close()

	if sel.Active() != "settings" {
		t.Fatalf("Active() = %q, want settings", sel.Active())
	}

	tabnav.NewSubTargets("/dashboard", loc).Clear()

	if loc.URL() != "/dashboard" {
		t.Errorf("URL() = %q, want fragment removed", loc.URL())
	}
	if sel.Active() != "overview" {
		t.Errorf("Active() = %q, want overview without an external event", sel.Active())
	}
}

func TestSubTargets_ReplaceAloneDoesNotNotify(t *testing.T) {
	loc := tabnav.NewMemoryLocation("/dashboard#settings")
	sel := tabnav.NewSelector(superAdmin, loc)
	defer sel.Close()

	loc.Replace("/dashboard")
	if sel.Active() != "settings" {
		t.Errorf("Replace must not notify; Active() = %q", sel.Active())
	}
}

func TestSubTargets_Activate(t *testing.T) {
	t.Run("on host", func(t *testing.T) {
		loc := tabnav.NewMemoryLocation("/dashboard")
		sel := tabnav.NewSelector(superAdmin, loc)
		defer sel.Close()

		if tabnav.NewSubTargets("/dashboard", loc).Activate("settings") {
			t.Errorf("expected in-place update")
		}
		if sel.Active() != "settings" {
			t.Errorf("Active() = %q", sel.Active())
		}
		if n := loc.Navigations(); len(n) != 0 {
			t.Errorf("unexpected navigations %v", n)
		}
	})

	t.Run("elsewhere", func(t *testing.T) {
		loc := tabnav.NewMemoryLocation("/events")
		if !tabnav.NewSubTargets("/dashboard", loc).Activate("settings") {
			t.Errorf("expected a navigation")
		}
		n := loc.Navigations()
		if len(n) != 1 || n[0] != "/dashboard#settings" {
			t.Errorf("Navigations() = %v", n)
		}
		if loc.Path() != "/dashboard" || loc.Fragment() != "settings" {
			t.Errorf("location = %q", loc.URL())
		}
	})
}

func TestSplitJoinURL(t *testing.T) {
	tests := []struct {
		in, path, frag string
	}{
		{"/a", "/a", ""},
		{"/a#b", "/a", "b"},
		{"/a#b#c", "/a", "b#c"},
		{"#x", "", "x"},
	}
	for _, tt := range tests {
		p, f := tabnav.SplitURL(tt.in)
		if p != tt.path || f != tt.frag {
			t.Errorf("SplitURL(%q) = %q, %q", tt.in, p, f)
		}
		if f != "" && tabnav.JoinURL(p, f) != tt.in {
			t.Errorf("JoinURL(%q, %q) = %q", p, f, tabnav.JoinURL(p, f))
		}
	}
}

func TestMemoryLocation_Concurrent(t *testing.T) {
	loc := tabnav.NewMemoryLocation("/dashboard")
	sel := tabnav.NewSelector(superAdmin, loc)
	defer sel.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := superAdmin.All()[i%len(superAdmin.All())]
			for j := 0; j < 50; j++ {
				sel.Select(string(s))
				_ = sel.Active()
				cancel := loc.Subscribe(func(string) {})
				cancel()
			}
		}(i)
	}
	wg.Wait()

	if !superAdmin.Contains(string(sel.Active())) {
		t.Errorf("Active() = %q is not a known section", sel.Active())
	}
	if loc.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", loc.Subscribers())
	}
}
