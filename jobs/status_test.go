package jobs

import "testing"

func TestStatusRoundtrip(t *testing.T) {
	statuses := []Status{Init, Accepted, NoAvailableWorkers, QueueFull, Error, Complete}
	for _, s := range statuses {
		if got := StatusFromText(s.String()); got != s {
			t.Errorf("expected %q to roundtrip, got %q", s, got)
		}
	}
	if got := StatusFromText("bogus"); got != Unknown {
		t.Errorf("expected Unknown, got %q", got)
	}
}

func TestStatusScan(t *testing.T) {
	var s Status
	if err := s.Scan("Complete"); err != nil {
		t.Fatal(err)
	}
	if s != Complete {
		t.Errorf("expected Complete, got %q", s)
	}
	if err := s.Scan(1.5); err == nil {
		t.Error("expected an error scanning a float")
	}
}
