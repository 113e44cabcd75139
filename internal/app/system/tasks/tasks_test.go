package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/trueportme/adminconsole/internal/app/system/namecache"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakePurger struct {
	cutoff time.Time
	n      int64
	err    error
}

func (f *fakePurger) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

type countSweeper struct{ calls int32 }

func (c *countSweeper) Sweep() int { atomic.AddInt32(&c.calls, 1); return 1 }

type fakeDirectory struct{}

func (fakeDirectory) Directory(context.Context) ([]namecache.Entry, error) {
	return []namecache.Entry{{ID: "v1", Name: "Ravi"}, {ID: "v2", Name: "Meera"}}, nil
}

func TestScheduler_AddValidates(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	defer s.Stop(context.Background())

	if err := s.Add(Job{Name: "bad", Schedule: "every sometimes", Run: func(context.Context) error { return nil }}); err == nil {
		t.Error("expected error for invalid schedule")
	}
	ok := Job{Name: "ok", Schedule: "@every 1h", Run: func(context.Context) error { return nil }}
	if err := s.Add(ok); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(ok); err == nil {
		t.Error("expected duplicate name error")
	}
	if got := s.Jobs(); len(got) != 1 || got[0] != "ok" {
		t.Errorf("Jobs = %v", got)
	}
}

func TestScheduler_RunNowAndStop(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	sw := &countSweeper{}
	if err := s.Add(SweepJob("views", sw, time.Hour, zap.NewNop())); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Start()
	if err := s.RunNow("views"); err != nil {
		t.Fatalf("RunNow: %v", err)
	}
	if atomic.LoadInt32(&sw.calls) != 1 {
		t.Errorf("sweeper calls = %d", sw.calls)
	}
	if err := s.RunNow("missing"); err == nil {
		t.Error("expected error for unknown task")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	defer s.Stop(context.Background())
	if err := s.Add(Job{Name: "boom", Schedule: "@every 1h", Run: func(context.Context) error { panic("boom") }}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.RunNow("boom"); err != nil {
		t.Fatalf("RunNow: %v", err)
	}
}

func TestAuditRetentionJob(t *testing.T) {
	p := &fakePurger{n: 3}
	j := AuditRetentionJob(p, 24*time.Hour, zap.NewNop())
	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if d := time.Since(p.cutoff); d < 23*time.Hour || d > 25*time.Hour {
		t.Errorf("cutoff %v not ~24h ago", p.cutoff)
	}

	p.err = errors.New("db down")
	if err := j.Run(context.Background()); err == nil {
		t.Error("expected error to propagate")
	}
}

func TestVerifierDirectoryJob(t *testing.T) {
	dir := namecache.New()
	j := VerifierDirectoryJob(fakeDirectory{}, dir, zap.NewNop())
	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if dir.ResolveName("v2", "") != "Meera" || dir.Len() != 2 {
		t.Errorf("directory not filled: %v", dir.Entries())
	}
}
