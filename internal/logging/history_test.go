package logging

import (
	"testing"
)

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(3)

	if rb.ReadAll() != nil {
		t.Error("ReadAll() on empty buffer should be nil")
	}

	for i := 1; i <= 5; i++ {
		rb.Write(LogEntry{Seq: uint64(i)})
	}

	if rb.Count() != 3 {
		t.Errorf("Count() = %d, want 3", rb.Count())
	}
	entries := rb.ReadAll()
	for i, want := range []uint64{3, 4, 5} {
		if entries[i].Seq != want {
			t.Errorf("entries[%d].Seq = %d, want %d", i, entries[i].Seq, want)
		}
	}
}

func TestRingBufferPartial(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write(LogEntry{Seq: 1})
	rb.Write(LogEntry{Seq: 2})

	entries := rb.ReadAll()
	if len(entries) != 2 || entries[0].Seq != 1 || entries[1].Seq != 2 {
		t.Errorf("ReadAll() = %+v", entries)
	}
}

func TestHistoryDisabled(t *testing.T) {
	tf := newTestFacility(t, func(o *Options) { o.HistorySize = 0 })
	if err := tf.SetDestination(ComponentFSAL, "TEST"); err != nil {
		t.Fatalf("SetDestination() error = %v", err)
	}
	tf.Warn(t.Context(), ComponentFSAL, "kept nowhere")

	if tf.History() != nil {
		t.Error("History() should be nil when disabled")
	}
}
