package game

import "testing"

func TestSplashMessages(t *testing.T) {
	var s splash
	if got := s.Message(); got != "initializing..." {
		t.Fatalf("first message = %q", got)
	}

	seen := map[string]int{}
	for !s.Done() {
		seen[s.Message()]++
		s.Update()
	}
	for i, msg := range splashMessages {
		if seen[msg] == 0 {
			t.Errorf("message %d %q never shown", i, msg)
		}
	}
	if seen["initializing..."] != splashStepFrames {
		t.Errorf("first message shown %d frames, want %d", seen["initializing..."], splashStepFrames)
	}
	if s.frame != splashFrames+splashHoldFrames {
		t.Errorf("finished after %d frames, want %d", s.frame, splashFrames+splashHoldFrames)
	}
}

func TestSplashOpacity(t *testing.T) {
	var s splash
	for i := 0; i < splashFrames; i++ {
		if a := s.Opacity(); a != 1 {
			t.Fatalf("frame %d: opacity %v, want 1", s.frame, a)
		}
		s.Update()
	}
	if p := s.Progress(); p != 1 {
		t.Errorf("progress at %d = %v, want 1", splashFrames, p)
	}

	prev := s.Opacity()
	for !s.Done() {
		s.Update()
		a := s.Opacity()
		if a > prev || a < 0 {
			t.Fatalf("opacity %v after %v during fade", a, prev)
		}
		prev = a
	}
	if s.Opacity() != 0 {
		t.Error("finished splash still visible")
	}
}

func TestSplashSkip(t *testing.T) {
	var s splash
	s.Update()
	s.Skip()
	if !s.Done() || s.Opacity() != 0 {
		t.Fatal("Skip did not hide the splash")
	}
	s.Update()
	if !s.Done() {
		t.Fatal("Update revived a skipped splash")
	}
}
