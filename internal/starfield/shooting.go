package starfield

// ShootingStar is a short-lived streak. Life is 1 at spawn and falls by Decay
// every frame.
type ShootingStar struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Decay  float64
	Length float64
	Width  float64
	age    int
}

// Step moves the streak one frame along its velocity and decays its life.
func (ss *ShootingStar) Step() {
	ss.X += ss.VX
	ss.Y += ss.VY
	ss.age++
	// derived from the age so that e.g. 50 frames at 0.02 land exactly on 0
	ss.Life = 1 - float64(ss.age)*ss.Decay
}

// Expired reports whether the streak is spent or outside the w×h surface by
// more than margin. The top edge is open so streaks can enter from above.
func (ss *ShootingStar) Expired(w, h, margin float64) bool {
	return ss.Life <= 0 || ss.X < -margin || ss.X > w+margin || ss.Y > h+margin
}

// Speed returns the velocity magnitude in px/frame.
func (ss *ShootingStar) Speed() float64 {
	return hypot(ss.VX, ss.VY)
}

// Tail returns the trail end point, behind the head along the inverse velocity
// and shortened as life runs out. ok is false for a stationary streak.
func (ss *ShootingStar) Tail() (x, y float64, ok bool) {
	speed := ss.Speed()
	if speed < epsilon {
		return ss.X, ss.Y, false
	}
	l := ss.Length * ss.Life
	return ss.X - ss.VX/speed*l, ss.Y - ss.VY/speed*l, true
}

// SpawnParams configures the shooting star schedule, in frames.
type SpawnParams struct {
	FirstMin, FirstMax       float64
	IntervalMin, IntervalMax float64
}

// Spawner emits one shooting star each time its countdown elapses.
type Spawner struct {
	params SpawnParams
	timer  int
	next   float64
}

// NewSpawner seeds the first countdown from [FirstMin, FirstMax].
func NewSpawner(p SpawnParams, rng *Rand) *Spawner {
	return &Spawner{params: p, next: rng.Range(p.FirstMin, p.FirstMax)}
}

// Next returns the current countdown threshold in frames.
func (s *Spawner) Next() float64 { return s.next }

// Timer returns the frames counted since the last spawn.
func (s *Spawner) Timer() int { return s.timer }

// Tick counts one frame and returns a new shooting star when the countdown
// elapses, re-rolling the next threshold from [IntervalMin, IntervalMax].
func (s *Spawner) Tick(w, h float64, rng *Rand) (ShootingStar, bool) {
	s.timer++
	if float64(s.timer) < s.next {
		return ShootingStar{}, false
	}
	s.timer = 0
	s.next = rng.Range(s.params.IntervalMin, s.params.IntervalMax)
	return SpawnShootingStar(w, h, rng), true
}

// SpawnShootingStar launches a streak from near the top-left or top-right,
// heading down and toward the opposite side.
func SpawnShootingStar(w, h float64, rng *Rand) ShootingStar {
	fromLeft := rng.Chance(0.5)
	angle := rng.Range(0.2, 0.8)
	speed := rng.Range(8, 16)

	ss := ShootingStar{
		Life: 1,
	}
	if fromLeft {
		ss.X = rng.Range(-50, w*0.3)
	} else {
		ss.X = rng.Range(w*0.7, w+50)
	}
	ss.Y = rng.Range(-50, h*0.3)

	cos, sin := cosSin(angle)
	ss.VX = cos * speed
	if !fromLeft {
		ss.VX = -ss.VX
	}
	ss.VY = sin * speed

	ss.Decay = rng.Range(0.008, 0.02)
	ss.Length = rng.Range(60, 140)
	ss.Width = rng.Range(1, 2.5)
	return ss
}
