package kcs

import "testing"

func TestTrimDropsLeadingAndTrailingSilence(t *testing.T) {
	s := Spectral{
		Lo: []float64{0.01, 0.01, 5, 5, 5, 0.01},
		Hi: []float64{0.01, 0.01, 1, 1, 1, 0.01},
	}
	got := Trim(s)
	if got.LeadCount != 2 {
		t.Errorf("LeadCount = %d, want 2", got.LeadCount)
	}
	if got.TrailCount != 1 {
		t.Errorf("TrailCount = %d, want 1", got.TrailCount)
	}
	if len(got.Lo) != 3 || len(got.Hi) != 3 {
		t.Errorf("surviving series len = %d,%d, want 3,3", len(got.Lo), len(got.Hi))
	}
}

func TestTrimEmptyInput(t *testing.T) {
	got := Trim(Spectral{})
	if len(got.Lo) != 0 || got.LeadCount != 0 || got.TrailCount != 0 {
		t.Errorf("Trim(empty) = %+v, want zero value", got)
	}
}

func TestRefineSeparatesTwoClasses(t *testing.T) {
	// Half the steps are clearly low-tone dominant, half clearly high-tone.
	var lo, hi []float64
	for i := 0; i < 20; i++ {
		lo = append(lo, 10)
		hi = append(hi, 1)
	}
	for i := 0; i < 20; i++ {
		lo = append(lo, 1)
		hi = append(hi, 10)
	}
	th := Refine(lo, hi)
	if th.AvLo < 5 {
		t.Errorf("AvLo = %v, want close to 10 (low-tone class average)", th.AvLo)
	}
	if th.AvHi < 5 {
		t.Errorf("AvHi = %v, want close to 10 (high-tone class average)", th.AvHi)
	}
}

func TestRefineRevertsWhenSplitBelowFloor(t *testing.T) {
	// 48 of 50 steps are low-tone dominant; the high-tone class holds 2
	// steps (4%), below the 8% floor, so Refine must revert to the global
	// means.
	lo := make([]float64, 50)
	hi := make([]float64, 50)
	for i := range lo {
		lo[i] = 10
		hi[i] = 1
	}
	for i := 48; i < 50; i++ {
		lo[i] = 1
		hi[i] = 10
	}
	th := Refine(lo, hi)
	wantLo := (48*10.0 + 2*1.0) / 50
	wantHi := (48*1.0 + 2*10.0) / 50
	if th.AvLo != wantLo || th.AvHi != wantHi {
		t.Errorf("Refine() = %+v, want global means {%v %v}", th, wantLo, wantHi)
	}
}
