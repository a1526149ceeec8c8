package renderer

// RemainderPolicy decides what happens to the height % n rows that do not divide evenly into bands
type RemainderPolicy int

const (
	// RemainderLastBand appends the leftover rows to the final band
	RemainderLastBand RemainderPolicy = iota
	// RemainderDrop leaves the leftover rows at the bottom of the image unrendered
	RemainderDrop
)

func (p RemainderPolicy) String() string {
	switch p {
	case RemainderLastBand:
		return "last-band"
	case RemainderDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Band is a contiguous range of image rows [Start, End) rendered by one worker
type Band struct {
	Index int
	Start int
	End   int
}

// Rows returns the number of rows in the band
func (b Band) Rows() int {
	return b.End - b.Start
}

// PartitionRows splits height rows into n bands of height/n rows each.
// n is raised to 1 and capped at height. Bands are disjoint and ordered top to bottom.
func PartitionRows(height, n int, policy RemainderPolicy) []Band {
	if height <= 0 {
		return nil
	}
	n = min(max(n, 1), height)
	size := height / n

	bands := make([]Band, n)
	for i := range bands {
		bands[i] = Band{Index: i, Start: i * size, End: (i + 1) * size}
	}
	if policy == RemainderLastBand {
		bands[n-1].End = height
	}
	return bands
}

// coveredRows returns the number of rows the bands render
func coveredRows(bands []Band) int {
	total := 0
	for _, b := range bands {
		total += b.Rows()
	}
	return total
}
