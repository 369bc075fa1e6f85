package health

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/toadworks/toadbox-ctl/internal/instance"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

type stubObserver struct {
	status instance.Status
	err    error
}

func (s stubObserver) Observe(ctx context.Context, name string) (instance.Status, error) {
	return s.status, s.err
}

func testInstance() *instance.Instance {
	return &instance.Instance{Name: "alpha", SSHPort: 2222}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name   string
		result CheckResult
		want   Status
	}{
		{"running and reachable", CheckResult{ContainerRunning: true, SSHReachable: true}, StatusHealthy},
		{"running but unreachable", CheckResult{ContainerRunning: true}, StatusUnhealthy},
		{"stopped", CheckResult{}, StatusStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheck_RunningInstance(t *testing.T) {
	exec := system.NewMockExecutor()

	result := Check(context.Background(), stubObserver{status: instance.StatusRunning}, exec, testInstance())
	if !result.ContainerRunning || !result.SSHReachable {
		t.Errorf("result = %+v, want both probes up", result)
	}

	cmd, ok := exec.LastCommand()
	if !ok || cmd.Name != "ssh" {
		t.Fatalf("SSH probe not issued: %+v", cmd)
	}
	if !strings.Contains(cmd.Line(), "-p 2222") {
		t.Errorf("probe should target the instance port: %s", cmd.Line())
	}
}

func TestCheck_SSHDown(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.DefaultResponse = system.MockResponse{Err: stderrors.New("connection refused")}

	result := Check(context.Background(), stubObserver{status: instance.StatusRunning}, exec, testInstance())
	if !result.ContainerRunning {
		t.Error("container should be reported running")
	}
	if result.SSHReachable {
		t.Error("SSH should be reported unreachable")
	}
	if result.Summary() != StatusUnhealthy {
		t.Errorf("Summary() = %q", result.Summary())
	}
}

func TestCheck_StoppedSkipsSSHProbe(t *testing.T) {
	exec := system.NewMockExecutor()

	result := Check(context.Background(), stubObserver{status: instance.StatusStopped}, exec, testInstance())
	if result.ContainerRunning || result.SSHReachable {
		t.Errorf("result = %+v, want all probes down", result)
	}
	if len(exec.Commands) != 0 {
		t.Error("no SSH probe should run against a stopped container")
	}
}

func TestCheck_ObserverError(t *testing.T) {
	exec := system.NewMockExecutor()

	result := Check(context.Background(), stubObserver{err: stderrors.New("boom")}, exec, testInstance())
	if result.Summary() != StatusStopped {
		t.Errorf("Summary() = %q, observation failure reads as stopped", result.Summary())
	}
}
