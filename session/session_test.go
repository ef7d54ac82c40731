package session

import "testing"

func TestAddProfileAndInfo(t *testing.T) {
	s := New()
	data := []byte("a;b 10\na;c 5\n")

	h, err := s.AddProfile("trace1", data)
	if err != nil {
		t.Fatalf("AddProfile: %v", err)
	}

	info := s.Info()
	if info.ProfileCount != 1 {
		t.Fatalf("ProfileCount = %d, want 1", info.ProfileCount)
	}
	if info.EndUS != 15 {
		t.Fatalf("EndUS = %d, want 15", info.EndUS)
	}

	if s.Profile(h) == nil {
		t.Fatal("expected Profile(h) to resolve")
	}
}

func TestSetOffsetShiftsVirtualRange(t *testing.T) {
	s := New()
	data := []byte("a;b 10\n")
	h, err := s.AddProfile("trace1", data)
	if err != nil {
		t.Fatalf("AddProfile: %v", err)
	}

	s.SetOffset(h, 1000)
	info := s.Info()
	if info.StartUS != 1000 {
		t.Fatalf("StartUS = %d, want 1000", info.StartUS)
	}
	if info.EndUS != 1010 {
		t.Fatalf("EndUS = %d, want 1010", info.EndUS)
	}
}

func TestClearEmptiesSession(t *testing.T) {
	s := New()
	if _, err := s.AddProfile("t", []byte("a;b 1\n")); err != nil {
		t.Fatalf("AddProfile: %v", err)
	}
	s.Clear()
	if !s.Empty() {
		t.Fatal("expected session to be empty after Clear")
	}
}

func TestUnknownHandleSetOffsetIsNoop(t *testing.T) {
	s := New()
	s.SetOffset(999, 123) // must not panic
	if !s.Empty() {
		t.Fatal("expected session to remain empty")
	}
}
