package system

import (
	"context"
	"errors"
	"testing"
)

func TestMockFS_ReadWrite(t *testing.T) {
	fs := NewMockFS()

	if fs.Exists("/tmp/test.txt") {
		t.Error("file should not exist before write")
	}

	if err := fs.WriteFile("/tmp/test.txt", []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile("/tmp/test.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("ReadFile = %q, want %q", data, "hello")
	}

	if !fs.Exists("/tmp") {
		t.Error("parent directory should exist after write")
	}
}

func TestMockFS_Remove(t *testing.T) {
	fs := NewMockFS()
	fs.AddFile("/a/b", []byte("x"), 0644)

	if err := fs.Remove("/a/b"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if fs.Exists("/a/b") {
		t.Error("file should not exist after Remove")
	}
	if err := fs.Remove("/a/b"); err == nil {
		t.Error("removing a missing file should fail")
	}
}

func TestMockExecutor_PrefixMatching(t *testing.T) {
	exec := NewMockExecutor()
	exec.AddResponse("docker compose version", MockResponse{Stdout: []byte("v2.24")})
	exec.AddResponse("docker compose", MockResponse{Stderr: []byte("generic")})

	out, err := exec.Execute(context.Background(), "docker", "compose", "version")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if string(out) != "v2.24" {
		t.Errorf("longest prefix should win, got %q", out)
	}

	stdout, stderr, _ := exec.ExecuteStreams(context.Background(), "docker", "compose", "stop", "x")
	if len(stdout) != 0 || string(stderr) != "generic" {
		t.Errorf("shorter prefix should match, got stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestMockExecutor_RecordsCommands(t *testing.T) {
	exec := NewMockExecutor()
	exec.DefaultResponse = MockResponse{Err: errors.New("nope")}

	_, _, _ = exec.ExecuteStreams(context.Background(), "docker-compose", "-f", "x.yml", "up")

	cmd, ok := exec.LastCommand()
	if !ok {
		t.Fatal("expected a recorded command")
	}
	if cmd.Line() != "docker-compose -f x.yml up" {
		t.Errorf("Line() = %q", cmd.Line())
	}
}

func TestMockExecutor_LookPath(t *testing.T) {
	exec := NewMockExecutor()
	exec.AddBinary("docker", "/usr/bin/docker")

	path, err := exec.LookPath("docker")
	if err != nil || path != "/usr/bin/docker" {
		t.Errorf("LookPath(docker) = %q, %v", path, err)
	}

	if _, err := exec.LookPath("docker-compose"); err == nil {
		t.Error("unregistered binary should not resolve")
	}
}
