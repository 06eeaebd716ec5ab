package hookio

import (
	"strings"
	"testing"
)

func TestReadPayload(t *testing.T) {
	in := `{"hook_event_name":"SessionEnd","session_id":"abc-123","cwd":"/work/app","transcript_path":"/tmp/t.jsonl"}`
	p, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if p.Event != "SessionEnd" {
		t.Errorf("event = %q", p.Event)
	}
	if p.Cwd != "/work/app" {
		t.Errorf("cwd = %q", p.Cwd)
	}
	if p.SessionID != "abc-123" {
		t.Errorf("session = %q", p.SessionID)
	}
}

func TestReadEmptyInput(t *testing.T) {
	p, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Errorf("payload = %+v, want nil", p)
	}
}

func TestReadMalformed(t *testing.T) {
	if _, err := Read(strings.NewReader("{not json")); err == nil {
		t.Error("expected parse error")
	}
}
