package log

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSignAddsSourceFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("debug", &buf)

	l.Sign("10.0.0.7").Debug("Sending step %d", 2)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (%q)", err, buf.String())
	}
	if entry["source"] != "sign" {
		t.Errorf("source = %v, want sign", entry["source"])
	}
	if entry["ip"] != "10.0.0.7" {
		t.Errorf("ip = %v, want 10.0.0.7", entry["ip"])
	}
	if entry["message"] != "Sending step 2" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("warn", &buf)

	l.Debug("hidden")
	l.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	l.Warn("shown")
	if buf.Len() == 0 {
		t.Fatal("expected warn line to be written")
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("loud", &buf)

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info, got %q", buf.String())
	}
	l.Info("shown")
	if buf.Len() == 0 {
		t.Fatal("info should be written")
	}
}

func TestWithAddsField(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger("info", &buf).With("request_id", "abc")

	l.Info("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["request_id"] != "abc" {
		t.Errorf("request_id = %v, want abc", entry["request_id"])
	}
}
