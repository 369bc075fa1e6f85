package audit

import (
	"encoding/json"
	"sync"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/toadworks/toadbox-ctl/internal/logging"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

// Recorded action kinds.
const (
	ActionCreate  = "create"
	ActionStart   = "start"
	ActionStop    = "stop"
	ActionDelete  = "delete"
	ActionRefresh = "refresh"
	ActionError   = "error"
)

// Event is one line of an instance's audit trail.
type Event struct {
	Time     time.Time `json:"time"`
	Instance string    `json:"instance"`
	Action   string    `json:"action"`
	Detail   string    `json:"detail,omitempty"`
}

// Log writes events under a single directory, one JSONL file per instance.
// Instance names feed into file paths, so they are resolved with a secure
// join against the log root.
type Log struct {
	dir string
	fs  system.FileSystem
	mu  sync.Mutex
	now func() time.Time
}

// NewLog returns a Log rooted at dir.
func NewLog(dir string, fs system.FileSystem) *Log {
	if fs == nil {
		fs = system.DefaultFS()
	}
	return &Log{dir: dir, fs: fs, now: time.Now}
}

// Record appends one event to the named instance's trail. A nil Log is a
// no-op, and write failures are logged rather than returned so an audit
// problem can never block a lifecycle action.
func (l *Log) Record(instanceName, action, detail string) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	path, err := securejoin.SecureJoin(l.dir, instanceName+".jsonl")
	if err != nil {
		logging.Warn("audit path rejected", "instance", instanceName, "error", err)
		return
	}

	event := Event{
		Time:     l.now().UTC(),
		Instance: instanceName,
		Action:   action,
		Detail:   detail,
	}
	line, err := json.Marshal(&event)
	if err != nil {
		logging.Warn("audit event not encodable", "instance", instanceName, "error", err)
		return
	}

	if err := l.fs.MkdirAll(l.dir, 0755); err != nil {
		logging.Warn("audit directory not created", "dir", l.dir, "error", err)
		return
	}

	existing, _ := l.fs.ReadFile(path)
	if err := l.fs.WriteFile(path, append(existing, append(line, '\n')...), 0644); err != nil {
		logging.Warn("audit event not written", "path", path, "error", err)
	}
}

// Read returns the recorded events for one instance, oldest first. Lines
// that fail to parse are skipped.
func (l *Log) Read(instanceName string) ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	path, err := securejoin.SecureJoin(l.dir, instanceName+".jsonl")
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, line := range splitLines(data) {
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
