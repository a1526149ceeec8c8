package renderer

import (
	"reflect"
	"testing"
)

func TestPartitionRows(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		n        int
		policy   RemainderPolicy
		expected []Band
	}{
		{"even split", 8, 4, RemainderLastBand, []Band{{0, 0, 2}, {1, 2, 4}, {2, 4, 6}, {3, 6, 8}}},
		{"remainder to last band", 10, 3, RemainderLastBand, []Band{{0, 0, 3}, {1, 3, 6}, {2, 6, 10}}},
		{"remainder dropped", 10, 3, RemainderDrop, []Band{{0, 0, 3}, {1, 3, 6}, {2, 6, 9}}},
		{"zero bands becomes one", 5, 0, RemainderLastBand, []Band{{0, 0, 5}}},
		{"more bands than rows", 3, 8, RemainderDrop, []Band{{0, 0, 1}, {1, 1, 2}, {2, 2, 3}}},
		{"empty image", 0, 4, RemainderLastBand, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PartitionRows(tt.height, tt.n, tt.policy)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPartitionRows_DisjointAndCovering(t *testing.T) {
	for height := 1; height <= 64; height++ {
		for n := 1; n <= 20; n++ {
			for _, policy := range []RemainderPolicy{RemainderLastBand, RemainderDrop} {
				bands := PartitionRows(height, n, policy)

				next := 0
				for i, b := range bands {
					if b.Index != i {
						t.Fatalf("h=%d n=%d: band %d has index %d", height, n, i, b.Index)
					}
					if b.Start != next {
						t.Fatalf("h=%d n=%d: band %d starts at %d, expected %d", height, n, i, b.Start, next)
					}
					if b.End <= b.Start {
						t.Fatalf("h=%d n=%d: band %d is empty", height, n, i)
					}
					next = b.End
				}

				dropped := height - coveredRows(bands)
				switch policy {
				case RemainderLastBand:
					if dropped != 0 {
						t.Errorf("h=%d n=%d: last-band policy dropped %d rows", height, n, dropped)
					}
				case RemainderDrop:
					if want := height % min(n, height); dropped != want {
						t.Errorf("h=%d n=%d: expected %d dropped rows, got %d", height, n, want, dropped)
					}
				}
			}
		}
	}
}

func TestRemainderPolicy_String(t *testing.T) {
	if RemainderLastBand.String() != "last-band" || RemainderDrop.String() != "drop" {
		t.Errorf("unexpected names %q, %q", RemainderLastBand, RemainderDrop)
	}
}

func TestHardwareThreads(t *testing.T) {
	if n := HardwareThreads(); n < 1 {
		t.Errorf("expected at least one hardware thread, got %d", n)
	}
}
