package safe

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRandomWithinRadius(t *testing.T) {
	l := newTestLocator(Config{})
	src := groundSource(63)
	conf := RandomConfig{Attempts: 1, Radius: 20, MinY: 64, MaxY: 64}
	r := NewRand(1, "player")
	for i := 0; i < 100; i++ {
		pos, ok := l.Random(src, r, conf)
		if !ok {
			t.Fatal("expected a random location to be found")
		}
		if pos[1] != 64 {
			t.Fatalf("expected a location on the ground, got %v", pos)
		}
		if pos[0] < -20 || pos[0] > 21 || pos[2] < -20 || pos[2] > 21 {
			t.Fatalf("location %v outside of the radius", pos)
		}
	}
}

func TestRandomRadiusLimitedByBorder(t *testing.T) {
	l := newTestLocator(Config{})
	src := groundSource(63)
	r := NewRand(2, "player")
	for i := 0; i < 100; i++ {
		pos, ok := l.Random(src, r, RandomConfig{Attempts: 1, MinY: 64, MaxY: 64})
		if !ok {
			t.Fatal("expected a random location to be found")
		}
		if pos[0] < -100 || pos[0] > 101 || pos[2] < -100 || pos[2] > 101 {
			t.Fatalf("location %v outside of the border", pos)
		}
	}
}

func TestRandomSurfaceOnly(t *testing.T) {
	l := newTestLocator(Config{})
	src := heightSource{testSource: groundSource(40), ground: 40}
	conf := RandomConfig{Attempts: 1, Radius: 50, MinY: 100, MaxY: 120, SurfaceOnly: true}

	pos, ok := l.Random(src, NewRand(3, "player"), conf)
	if !ok || pos[1] != 41 {
		t.Fatalf("expected a location on the surface, got %v, %v", pos, ok)
	}

	conf.SurfaceOnly = false
	if pos, ok := l.Random(src, NewRand(3, "player"), conf); ok {
		t.Fatalf("expected no location far above the surface, got %v", pos)
	}
}

func TestRandomDeterministic(t *testing.T) {
	l := newTestLocator(Config{})
	src := randomSource(t, NewRand(4, "world"))
	conf := RandomConfig{Attempts: 20, Radius: 25, MinY: 56, MaxY: 69}

	var first []mgl64.Vec3
	for run := 0; run < 2; run++ {
		r := NewRand(5, "player")
		for i := 0; i < 10; i++ {
			pos, _ := l.Random(src, r, conf)
			if run == 0 {
				first = append(first, pos)
			} else if first[i] != pos {
				t.Fatalf("random placement %v differs between runs: %v vs %v", i, first[i], pos)
			}
		}
	}
}

func TestNewRand(t *testing.T) {
	a, b, c := NewRand(1, "a"), NewRand(1, "a"), NewRand(1, "b")
	same, different := true, false
	for i := 0; i < 4; i++ {
		x, y, z := a.Uint64(), b.Uint64(), c.Uint64()
		if x != y {
			same = false
		}
		if x != z {
			different = true
		}
	}
	if !same {
		t.Fatal("expected generators with the same seed and key to match")
	}
	if !different {
		t.Fatal("expected generators with different keys to differ")
	}
}

func TestRandomMatchesSequentialAttempts(t *testing.T) {
	src := randomSource(t, NewRand(6, "world"))
	conf := RandomConfig{Attempts: 12, Radius: 25, MinY: 56, MaxY: 69}
	sequential := newTestLocator(Config{Workers: 1})
	batched := newTestLocator(Config{Workers: 5})

	for seed := range uint64(20) {
		want, wantOK := sequential.Random(src, NewRand(seed, "player"), conf)
		got, gotOK := batched.Random(src, NewRand(seed, "player"), conf)
		if want != got || wantOK != gotOK {
			t.Fatalf("seed %v: expected %v, %v, got %v, %v", seed, want, wantOK, got, gotOK)
		}
	}
}

func TestRandomSearchesInBatches(t *testing.T) {
	m := NewMetrics()
	l := newTestLocator(Config{Workers: 3, Metrics: m})
	conf := RandomConfig{Attempts: 10, Radius: 20, MinY: 64, MaxY: 64}
	if _, ok := l.Random(groundSource(63), NewRand(7, "player"), conf); !ok {
		t.Fatal("expected a random location to be found")
	}
	if c := m.Counters(""); c.Searches != 3 || c.Found != 3 {
		t.Fatalf("expected a single batch of 3 searches, got %+v", c)
	}

	m = NewMetrics()
	l = newTestLocator(Config{Workers: 4, Metrics: m})
	if _, ok := l.Random(newTestSource("stone"), NewRand(7, "player"), conf); ok {
		t.Fatal("expected no random location in a solid world")
	}
	if c := m.Counters(""); c.Searches != 10 || c.Found != 0 {
		t.Fatalf("expected every attempt to be searched, got %+v", c)
	}
}
