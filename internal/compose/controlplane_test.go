package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	tberrors "github.com/toadworks/toadbox-ctl/internal/errors"
	"github.com/toadworks/toadbox-ctl/internal/system"
)

func TestResolveBinding_PrefersModernDocker(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddBinary("docker", "/usr/bin/docker")
	exec.AddResponse("/usr/bin/docker compose version", system.MockResponse{Stdout: []byte("Docker Compose version v2.24.0")})

	binding, err := ResolveBinding(context.Background(), exec, "/state/docker-compose.yml", "toadbox-manager")
	if err != nil {
		t.Fatalf("ResolveBinding failed: %v", err)
	}

	bin, args := binding.Command("up", "-d", "alpha")
	if bin != "/usr/bin/docker" {
		t.Errorf("binary = %q", bin)
	}
	want := "compose -f /state/docker-compose.yml -p toadbox-manager up -d alpha"
	if got := strings.Join(args, " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestResolveBinding_FallsBackToLegacy(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddBinary("docker", "/usr/bin/docker")
	exec.AddResponse("/usr/bin/docker compose version", system.MockResponse{Err: errors.New("unknown command")})
	exec.AddBinary("docker-compose", "/usr/local/bin/docker-compose")

	binding, err := ResolveBinding(context.Background(), exec, "/m.yml", "proj")
	if err != nil {
		t.Fatalf("ResolveBinding failed: %v", err)
	}

	bin, args := binding.Command("stop", "alpha")
	if bin != "/usr/local/bin/docker-compose" {
		t.Errorf("binary = %q", bin)
	}
	want := "-f /m.yml -p proj stop alpha"
	if got := strings.Join(args, " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestResolveBinding_LegacyWhenDockerAbsent(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddBinary("docker-compose", "/usr/local/bin/docker-compose")

	binding, err := ResolveBinding(context.Background(), exec, "/m.yml", "proj")
	if err != nil {
		t.Fatalf("ResolveBinding failed: %v", err)
	}
	if binding.Name() != "/usr/local/bin/docker-compose" {
		t.Errorf("Name() = %q", binding.Name())
	}
}

func TestResolveBinding_Unavailable(t *testing.T) {
	exec := system.NewMockExecutor()

	_, err := ResolveBinding(context.Background(), exec, "/m.yml", "proj")
	if err == nil {
		t.Fatal("expected control-plane-unavailable error")
	}
	if tberrors.GetExitCode(err) != tberrors.ExitControlPlaneUnavailable {
		t.Errorf("exit code = %d, want %d", tberrors.GetExitCode(err), tberrors.ExitControlPlaneUnavailable)
	}
}

func TestResolveBinding_NotCachedBetweenCalls(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddBinary("docker-compose", "/usr/local/bin/docker-compose")

	if _, err := ResolveBinding(context.Background(), exec, "/m.yml", "proj"); err != nil {
		t.Fatalf("first resolution failed: %v", err)
	}

	// Tool uninstalled between operations: the next resolution must notice.
	delete(exec.Binaries, "docker-compose")
	if _, err := ResolveBinding(context.Background(), exec, "/m.yml", "proj"); err == nil {
		t.Error("resolution must requery binaries on every call")
	}
}
