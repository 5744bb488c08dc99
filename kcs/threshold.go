/*
NAME
  threshold.go

DESCRIPTION
  threshold.go implements the edge trimmer and the iterative two-class
  adaptive thresholder (§4.3).
*/

package kcs

import "gonum.org/v1/gonum/stat"

// Thresholds is the pair of per-class averages used to classify steps as
// low-tone or high-tone dominant.
type Thresholds struct {
	AvLo, AvHi float64
}

// TrimResult is the output of Trim: the surviving spectral series and the
// counts of dropped leading/trailing steps (for diagnostics, §6).
type TrimResult struct {
	Lo, Hi     []float64
	LeadCount  int
	TrailCount int
}

// Trim drops leading and trailing near-silence from s, per §4.3: a step is
// silence if both lo and hi energies are below a tenth of their respective
// global means.
func Trim(s Spectral) TrimResult {
	n := len(s.Lo)
	if n == 0 {
		return TrimResult{}
	}
	avlo0 := stat.Mean(s.Lo, nil)
	avhi0 := stat.Mean(s.Hi, nil)

	head := 0
	for head < n && s.Lo[head] < avlo0/10 && s.Hi[head] < avhi0/10 {
		head++
	}
	tail := n
	for tail > head && s.Lo[tail-1] < avlo0/10 && s.Hi[tail-1] < avhi0/10 {
		tail--
	}

	return TrimResult{
		Lo:         s.Lo[head:tail],
		Hi:         s.Hi[head:tail],
		LeadCount:  head,
		TrailCount: n - tail,
	}
}

// Refine runs the iterative two-class threshold refinement of §4.3: up to
// five passes repartitioning every step into a low or high class by the
// ratio of its energy to the current class average, then re-averaging.
// Reverts to the (global-mean) thresholds if a pass would empty a class, or
// if the final split leaves either class below 8% of the population.
func Refine(lo, hi []float64) Thresholds {
	n := len(lo)
	global := Thresholds{AvLo: stat.Mean(lo, nil), AvHi: stat.Mean(hi, nil)}
	if n == 0 {
		return global
	}

	cur := global
	for pass := 0; pass < 5; pass++ {
		var loSum, hiSum float64
		var loN, hiN int
		for i := range lo {
			if lo[i]/cur.AvLo > hi[i]/cur.AvHi {
				loSum += lo[i]
				loN++
			} else {
				hiSum += hi[i]
				hiN++
			}
		}
		if loN == 0 || hiN == 0 {
			return global
		}
		cur.AvLo = loSum / float64(loN)
		cur.AvHi = hiSum / float64(hiN)
	}

	// Final 8% floor check (§4.3 "Rationale").
	var loN int
	for i := range lo {
		if lo[i]/cur.AvLo > hi[i]/cur.AvHi {
			loN++
		}
	}
	hiN := n - loN
	if float64(loN) < 0.08*float64(n) || float64(hiN) < 0.08*float64(n) {
		return global
	}
	return cur
}
