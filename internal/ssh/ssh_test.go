package ssh

import (
	"context"
	"strings"
	"testing"

	"github.com/toadworks/toadbox-ctl/internal/system"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions(2222)

	if opts.Port != 2222 {
		t.Errorf("Port = %d, want 2222", opts.Port)
	}
	if opts.User != DefaultUser {
		t.Errorf("User = %q, want %q", opts.User, DefaultUser)
	}
	if opts.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", opts.Host, DefaultHost)
	}
	if opts.StrictHostKeyCheck {
		t.Error("StrictHostKeyCheck should be false by default")
	}
	if opts.KnownHostsFile != "/dev/null" {
		t.Errorf("KnownHostsFile = %q, want /dev/null", opts.KnownHostsFile)
	}
	if opts.BatchMode {
		t.Error("BatchMode should be false by default")
	}
	if opts.RequestTTY {
		t.Error("RequestTTY should be false by default")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions(2222).
		WithUser("root").
		WithBatchMode().
		WithTTY().
		WithTimeout(5)

	if opts.User != "root" {
		t.Errorf("User = %q, want root", opts.User)
	}
	if !opts.BatchMode {
		t.Error("BatchMode should be true")
	}
	if !opts.RequestTTY {
		t.Error("RequestTTY should be true")
	}
	if opts.ConnectTimeout != 5 {
		t.Errorf("ConnectTimeout = %d, want 5", opts.ConnectTimeout)
	}
}

func TestWithUserEmptyKeepsDefault(t *testing.T) {
	opts := DefaultOptions(2222).WithUser("")
	if opts.User != DefaultUser {
		t.Errorf("User = %q, empty override should keep the default", opts.User)
	}
}

func TestBaseArgs(t *testing.T) {
	args := strings.Join(DefaultOptions(2222).BaseArgs(), " ")

	for _, want := range []string{
		"-p 2222",
		"-o StrictHostKeyChecking=no",
		"-o UserKnownHostsFile=/dev/null",
		"-o ConnectTimeout=2",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("BaseArgs missing %q: %s", want, args)
		}
	}
	if strings.Contains(args, "-t") {
		t.Errorf("BaseArgs should not request a TTY by default: %s", args)
	}
}

func TestBuildArgs(t *testing.T) {
	args := DefaultOptions(2222).WithTTY().BuildArgs("tmux", "attach")

	joined := strings.Join(args, " ")
	if !strings.HasSuffix(joined, "agent@localhost tmux attach") {
		t.Errorf("destination and command must come last: %s", joined)
	}
	if !strings.Contains(joined, "-t") {
		t.Errorf("TTY flag missing: %s", joined)
	}
}

func TestExec(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.AddResponse("ssh", system.MockResponse{Stdout: []byte("ok\n")})

	out, err := Exec(context.Background(), exec, DefaultOptions(2222), "uname", "-a")
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if string(out) != "ok\n" {
		t.Errorf("output = %q", out)
	}

	cmd, _ := exec.LastCommand()
	line := cmd.Line()
	if !strings.Contains(line, "-o BatchMode=yes") {
		t.Errorf("remote exec should use batch mode: %s", line)
	}
	if !strings.HasSuffix(line, "agent@localhost uname -a") {
		t.Errorf("command line = %s", line)
	}
}

func TestReplaceWithSession(t *testing.T) {
	exec := system.NewMockExecutor()

	err := ReplaceWithSession(exec, DefaultOptions(2222))
	if err == nil {
		t.Fatal("mock handoff reports an error by design")
	}

	cmd, ok := exec.LastCommand()
	if !ok || cmd.Name != "ssh" {
		t.Fatalf("process replacement not attempted: %+v", cmd)
	}
	if !strings.Contains(cmd.Line(), "-p 2222") {
		t.Errorf("port missing from handoff: %s", cmd.Line())
	}
}

func TestCheckConnection(t *testing.T) {
	exec := system.NewMockExecutor()
	if !CheckConnection(context.Background(), exec, DefaultOptions(2222)) {
		t.Error("successful probe should report reachable")
	}

	exec = system.NewMockExecutor()
	exec.DefaultResponse = system.MockResponse{Err: context.DeadlineExceeded}
	if CheckConnection(context.Background(), exec, DefaultOptions(2222)) {
		t.Error("failed probe should report unreachable")
	}
}
