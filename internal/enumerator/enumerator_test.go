package enumerator

import (
	"testing"

	"github.com/allthemusicllc/atm-cli/internal/midi"
)

func notes(n int) midi.NoteVec {
	nv := make(midi.NoteVec, n)
	for i := 0; i < n; i++ {
		nv[i] = midi.NewPitch(i%12, 4)
	}
	return nv
}

// For all valid (k, L), the Enumerator must yield exactly k^L melodies,
// each distinct, in lexicographic order.
func TestEnumeratorCount(t *testing.T) {
	cases := []struct {
		k, length int
	}{
		{1, 4}, {2, 3}, {3, 4}, {5, 2},
	}
	for _, c := range cases {
		e := New(notes(c.k), c.length)
		count := 0
		seen := map[string]bool{}
		for {
			m, ok := e.Next()
			if !ok {
				break
			}
			key := midi.HashMelody(m)
			if seen[key] {
				t.Errorf("k=%d length=%d: melody %q produced twice", c.k, c.length, key)
			}
			seen[key] = true
			count++
		}
		want := 1
		for i := 0; i < c.length; i++ {
			want *= c.k
		}
		if count != want {
			t.Errorf("k=%d length=%d: got %d melodies, want %d", c.k, c.length, count, want)
		}
	}
}

func TestEnumeratorLexicographicOrder(t *testing.T) {
	e := New(notes(2), 2)
	var order [][2]int
	for {
		m, ok := e.Next()
		if !ok {
			break
		}
		order = append(order, [2]int{m[0].Class(), m[1].Class()})
	}
	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if len(order) != len(want) {
		t.Fatalf("got %d melodies, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("melody %d = %v, want %v", i, order[i], want[i])
		}
	}
}

func TestEnumeratorKOneSingleMelody(t *testing.T) {
	e := New(notes(1), 5)
	count := 0
	for {
		_, ok := e.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 1 {
		t.Errorf("k=1: got %d melodies, want 1", count)
	}
}

func TestEnumeratorNonRestartable(t *testing.T) {
	e := New(notes(2), 1)
	for {
		_, ok := e.Next()
		if !ok {
			break
		}
	}
	if _, ok := e.Next(); ok {
		t.Errorf("expected exhausted enumerator to keep returning false")
	}
}
