package audit

import (
	"testing"
	"time"

	"github.com/toadworks/toadbox-ctl/internal/system"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return func() time.Time { return t }
}

func TestRecordAndRead(t *testing.T) {
	fs := system.NewMockFS()
	log := NewLog("/home/user/.toadbox-manager/audit", fs)
	log.now = fixedClock()

	log.Record("alpha", ActionCreate, "")
	log.Record("alpha", ActionStart, "")
	log.Record("alpha", ActionError, "network timeout")

	events, err := log.Read("alpha")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Action != ActionCreate || events[2].Action != ActionError {
		t.Errorf("event order wrong: %v", events)
	}
	if events[2].Detail != "network timeout" {
		t.Errorf("Detail = %q", events[2].Detail)
	}
	if !events[0].Time.Equal(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)) {
		t.Errorf("Time = %v", events[0].Time)
	}
}

func TestRecordSeparatesInstances(t *testing.T) {
	fs := system.NewMockFS()
	log := NewLog("/audit", fs)

	log.Record("alpha", ActionStart, "")
	log.Record("beta", ActionStop, "")

	alpha, err := log.Read("alpha")
	if err != nil {
		t.Fatal(err)
	}
	if len(alpha) != 1 || alpha[0].Instance != "alpha" {
		t.Errorf("alpha trail contaminated: %v", alpha)
	}
}

func TestRecordNilLogIsNoop(t *testing.T) {
	var log *Log
	log.Record("alpha", ActionStart, "") // must not panic
}

func TestReadSkipsCorruptLines(t *testing.T) {
	fs := system.NewMockFS()
	log := NewLog("/audit", fs)

	log.Record("alpha", ActionStart, "")
	data, _ := fs.GetFile("/audit/alpha.jsonl")
	fs.AddFile("/audit/alpha.jsonl", append(data, []byte("{garbage\n")...), 0644)
	log.Record("alpha", ActionStop, "")

	events, err := log.Read("alpha")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2 with the corrupt line skipped", len(events))
	}
}

func TestRecordWriteFailureDoesNotPanic(t *testing.T) {
	fs := system.NewMockFS()
	fs.WriteFileErr = errWrite
	log := NewLog("/audit", fs)
	log.Record("alpha", ActionStart, "")

	if fs.Exists("/audit/alpha.jsonl") {
		t.Error("failed write must not leave a file behind")
	}
}

var errWrite = &writeErr{}

type writeErr struct{}

func (*writeErr) Error() string { return "disk full" }
