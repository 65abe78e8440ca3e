package dedup

import (
	"testing"
	"time"
)

func TestShouldProcess(t *testing.T) {
	d := New(time.Minute, 100)
	if !d.ShouldProcess("a") {
		t.Error("first sighting should process")
	}
	if d.ShouldProcess("a") {
		t.Error("redelivery within TTL should be suppressed")
	}
	if !d.ShouldProcess("b") {
		t.Error("distinct id should process")
	}
}

func TestShouldProcess_EmptyID(t *testing.T) {
	d := New(time.Minute, 100)
	if !d.ShouldProcess("") || !d.ShouldProcess("") {
		t.Error("empty id must always process")
	}
}

func TestShouldProcess_TTLExpiry(t *testing.T) {
	d := New(10*time.Millisecond, 100)
	if !d.ShouldProcess("a") {
		t.Fatal("first sighting should process")
	}
	time.Sleep(20 * time.Millisecond)
	if !d.ShouldProcess("a") {
		t.Error("expired id should process again")
	}
}
