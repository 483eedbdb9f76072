package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	t.Parallel()

	reader := bufio.NewReader(strings.NewReader("  alice  \n"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Enter username", &out)
	if err != nil {
		t.Fatalf("GetSimpleText error: %v", err)
	}
	if got != "alice" {
		t.Fatalf("got %q want %q", got, "alice")
	}
	if !strings.Contains(out.String(), "Enter username") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	t.Parallel()

	reader := bufio.NewReader(strings.NewReader("alice"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Enter username", &out)
	if err != nil {
		t.Fatalf("GetSimpleText error: %v", err)
	}
	if got != "alice" {
		t.Fatalf("got %q want %q", got, "alice")
	}
}

func TestGetPassword_UsesStubbedReader(t *testing.T) {
	old := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("Abcdef1!"), nil }
	defer func() { readPassword = old }()

	var out bytes.Buffer
	got, err := GetPassword("Enter password", &out)
	if err != nil {
		t.Fatalf("GetPassword error: %v", err)
	}
	if got != "Abcdef1!" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(out.String(), "Enter password") {
		t.Fatalf("prompt not written: %q", out.String())
	}
}
