package collectors

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smazurov/complog/internal/logging"
)

type fakeSource struct {
	live    atomic.Int64
	samples atomic.Int32
}

func (s *fakeSource) Live() int64 {
	s.samples.Add(1)
	return s.live.Load()
}
func (s *fakeSource) OpenFiles() int64 { return 1 }
func (s *fakeSource) HistoryLen() int  { return 12 }
func (s *fakeSource) Pinned(c logging.Component) bool {
	return c == logging.ComponentNLM || c == logging.ComponentFSAL
}

func TestFacilityCollectorSample(t *testing.T) {
	src := &fakeSource{}
	src.live.Store(3)
	c := NewFacilityCollector(src, time.Second)

	got := c.sample()
	if got.LiveContexts != 3 || got.OpenFiles != 1 || got.HistoryRecords != 12 || got.PinnedComponents != 2 {
		t.Errorf("sample() = %+v", got)
	}
}

func TestFacilityCollectorRun(t *testing.T) {
	src := &fakeSource{}
	c := NewFacilityCollector(src, 10*time.Millisecond)

	if err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(60 * time.Millisecond)
	if err := c.Stop(); err != nil {
		t.Fatal(err)
	}

	n := src.samples.Load()
	if n < 2 {
		t.Errorf("samples = %d, want at least 2", n)
	}
	time.Sleep(30 * time.Millisecond)
	if src.samples.Load() != n {
		t.Error("collector kept sampling after Stop")
	}
}

func TestNewFacilityCollectorDefaultInterval(t *testing.T) {
	if c := NewFacilityCollector(&fakeSource{}, 0); c.interval != 5*time.Second {
		t.Errorf("interval = %v, want 5s", c.interval)
	}
}
