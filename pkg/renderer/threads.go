package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// HardwareThreads returns the number of logical CPUs, never less than 1.
// It falls back to runtime.NumCPU when the platform query fails.
func HardwareThreads() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	return max(n, 1)
}
