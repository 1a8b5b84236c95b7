package interval

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNew_Sorts(t *testing.T) {
	iv := New(1.5, -0.5)
	if iv.Lo != -0.5 || iv.Hi != 1.5 {
		t.Errorf("New(1.5, -0.5) = %v", iv)
	}
	if !New(2, 2).Degenerate() {
		t.Errorf("Expected degenerate interval")
	}
}

func TestIntersect(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want Interval
		ok   bool
	}{
		{"overlap", New(0, 1), New(0.5, 1.5), New(0.5, 1), true},
		{"contained", New(0, 1), New(0.5, 0.6), New(0.5, 0.6), true},
		{"touching", New(0, 0.5), New(0.5, 1.0), New(0.5, 0.5), true},
		{"disjoint", New(0, 0.5), New(0.6, 1.0), Interval{}, false},
		{"identical", New(0, 1), New(0, 1), New(0, 1), true},
		{"point in range", New(0.3, 0.3), New(0, 1), New(0.3, 0.3), true},
		{"point outside", New(2, 2), New(0, 1), Interval{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Intersect(c.a, c.b)
			if ok != c.ok || got != c.want {
				t.Errorf("Intersect(%v, %v) = %v, %v; want %v, %v", c.a, c.b, got, ok, c.want, c.ok)
			}
			// Intersection commutes.
			rev, rok := Intersect(c.b, c.a)
			if rev != got || rok != ok {
				t.Errorf("Intersect not commutative for %v, %v", c.a, c.b)
			}
		})
	}
}

func TestIntersectList(t *testing.T) {
	got := IntersectList(New(0, 1), []Interval{New(0, 0.5), New(0.8, 1.5)})
	want := []Interval{New(0, 0.5), New(0.8, 1.0)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IntersectList = %v, want %v", got, want)
	}

	got = IntersectList(New(2, 3), []Interval{New(0, 0.5)})
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestIntersectLists(t *testing.T) {
	l1 := []Interval{New(0, 0.1), New(0.3, 0.4), New(0.6, 1.0)}
	l2 := []Interval{New(0.3, 0.5), New(0.8, 0.9)}
	got := IntersectLists(l1, l2)
	want := []Interval{New(0.3, 0.4), New(0.8, 0.9)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IntersectLists = %v, want %v", got, want)
	}
}

func TestIntersectLists_SelfIdentity(t *testing.T) {
	// Self-intersection of a disjoint list reproduces the input.
	l := []Interval{New(-3, -1), New(0, 0.5), New(2, 2), New(4, 7)}
	got := IntersectLists(l, l)
	if !reflect.DeepEqual(got, l) {
		t.Errorf("IntersectLists(l, l) = %v, want %v", got, l)
	}
}

func TestIntersectLists_ContentCommutes(t *testing.T) {
	a := []Interval{New(0, 1), New(2, 3)}
	b := []Interval{New(0.5, 2.5), New(2.9, 4)}
	ab := IntersectLists(a, b)
	ba := IntersectLists(b, a)
	if len(ab) != len(ba) {
		t.Fatalf("Cardinality differs: %v vs %v", ab, ba)
	}
	// Same content; order may differ.
	for _, iv := range ab {
		found := false
		for _, jv := range ba {
			if iv == jv {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Interval %v in A∩B but not B∩A (%v vs %v)", iv, ab, ba)
		}
	}
}

func TestIntervalJSON(t *testing.T) {
	b, err := json.Marshal([]Interval{New(0.25, 0.5)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[[0.25,0.5]]" {
		t.Errorf("Marshal = %s", b)
	}
	var list []Interval
	if err := json.Unmarshal([]byte("[[1.0,-1.0]]"), &list); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(list, []Interval{New(-1, 1)}) {
		t.Errorf("Unmarshal = %v", list)
	}
}
