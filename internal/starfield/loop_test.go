package starfield

import "testing"

func TestLoop_StartReschedulesEachFrame(t *testing.T) {
	sim := newTestSim(testConfig())
	sim.Resize(800, 600)
	loop := NewLoop(sim)
	sched := &fakeScheduler{}
	surf := newRecordingSurface(t)

	loop.Start(sched, surf)
	if len(sched.pending) != 1 {
		t.Fatalf("pending = %d after Start, want 1", len(sched.pending))
	}

	for i := 1; i <= 5; i++ {
		if ran := sched.run(); ran != 1 {
			t.Fatalf("frame %d: ran %d callbacks", i, ran)
		}
		if loop.Frames() != uint64(i) {
			t.Fatalf("Frames = %d, want %d", loop.Frames(), i)
		}
		if surf.clears != i {
			t.Fatalf("clears = %d, want %d", surf.clears, i)
		}
	}
}

func TestLoop_StopEndsTheChain(t *testing.T) {
	sim := newTestSim(testConfig())
	sim.Resize(800, 600)
	sim.PointerMove(10, 10)
	loop := NewLoop(sim)
	sched := &fakeScheduler{}
	surf := newRecordingSurface(t)

	loop.Start(sched, surf)
	sched.run()

	loop.Stop()
	loop.Stop() // idempotent

	if !loop.Stopped() {
		t.Fatal("Stopped() = false after Stop")
	}
	if sim.glow != nil {
		t.Error("Stop did not release the pointer glow")
	}

	// the callback queued before Stop must not draw or reschedule
	sched.run()
	if len(sched.pending) != 0 {
		t.Errorf("rescheduled after Stop: %d pending", len(sched.pending))
	}
	if loop.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", loop.Frames())
	}
	if loop.Update() {
		t.Error("Update returned true after Stop")
	}

	loop.Start(sched, surf)
	if len(sched.pending) != 0 {
		t.Error("Start registered a callback on a stopped loop")
	}
}

func TestLoop_UpdateDrawSplit(t *testing.T) {
	sim := newTestSim(testConfig())
	sim.Resize(640, 480)
	loop := NewLoop(sim)
	surf := newRecordingSurface(t)

	for i := 0; i < 3; i++ {
		if !loop.Update() {
			t.Fatal("Update returned false on a running loop")
		}
	}
	loop.Draw(surf)
	if loop.Frames() != 3 || surf.clears != 1 {
		t.Errorf("Frames=%d clears=%d, want 3 and 1", loop.Frames(), surf.clears)
	}
}
