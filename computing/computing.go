// Package computing implements C1: the per-device, per-task execution time
// formula shared by every scheduler flavor.
package computing

import "github.com/emachad0/paragraph-schedulers/model"

// Time computes the execution time of task t on device d:
//
//	processing_density * data_size * (1 - parallel_fraction + parallel_fraction/cores)
//	-----------------------------------------------------------------------------------
//	                          cpu_frequency * 1e8
//
// The Amdahl form is always evaluated in full, even when parallel_fraction
// is 0, so parallel and sequential callers produce bit-identical results.
func Time(d model.Device, t model.Task) float64 {
	amdahl := 1 - t.ParallelFraction + t.ParallelFraction/float64(d.NumberOfCores)
	return t.ProcessingDensity * float64(t.DataSize) * amdahl / (d.CPUFrequency * 1e8)
}
