package batch

import (
	"math"

	"methanewatch/internal/coerce"
	"methanewatch/internal/flatten"
	"methanewatch/internal/rules"
)

// economicImpactPerTonne is the placeholder dollar factor applied per metric
// tonne of methane when rolling up a batch.
const economicImpactPerTonne = 0.0002

// Summary is the rolled-up result of one batch run.
type Summary struct {
	RunID              string            `json:"run_id"`
	County             string            `json:"county,omitempty"`
	Year               int               `json:"year"`
	Facilities         int               `json:"facilities"`
	MethaneEmissions   float64           `json:"methane_emissions"`
	AvgCompliance      float64           `json:"avg_compliance"`
	CriticalFacilities int               `json:"critical_facilities"`
	EconomicImpact     float64           `json:"economic_impact"`
	RulesChecked       int               `json:"rules_checked"`
	RulesCompliant     int               `json:"rules_compliant"`
	Skipped            []SkippedFacility `json:"skipped,omitempty"`
}

// SkippedFacility records a facility excluded from the batch and why.
type SkippedFacility struct {
	FacilityID string `json:"facility_id"`
	Reason     string `json:"reason"`
}

// FacilityMethane sums a facility's methane across the fixed canonical
// source facts plus the leak total, rounded to two decimals. Absent facts
// contribute zero.
func FacilityMethane(facts flatten.FactMap) float64 {
	var total float64
	for _, key := range flatten.MethaneSourceKeys {
		if v, ok := coerce.Float(facts[key]); ok {
			total += v
		}
	}
	if v, ok := coerce.Float(facts["leaks_mt_ch4"]); ok {
		total += v
	}
	return math.Round(total*100) / 100
}

// facilityResult is one worker's output for one facility.
type facilityResult struct {
	facilityID string
	methane    float64
	verdicts   []rules.Verdict
	err        error
}

// fold accumulates one facility result into the summary. Only the collecting
// owner calls it.
func (s *Summary) fold(res facilityResult) {
	if res.err != nil {
		s.Skipped = append(s.Skipped, SkippedFacility{
			FacilityID: res.facilityID,
			Reason:     res.err.Error(),
		})
		return
	}

	s.Facilities++
	s.MethaneEmissions += res.methane

	critical := false
	for _, v := range res.verdicts {
		if !v.Checked() {
			continue
		}
		s.RulesChecked++
		if v.Status == rules.StatusInCompliance {
			s.RulesCompliant++
		} else {
			critical = true
		}
	}
	if critical {
		s.CriticalFacilities++
	}
}

// finalize computes the derived summary fields once all results are folded.
func (s *Summary) finalize() {
	if s.RulesChecked > 0 {
		s.AvgCompliance = float64(s.RulesCompliant) / float64(s.RulesChecked)
	}
	s.EconomicImpact = math.Round(s.MethaneEmissions*economicImpactPerTonne*10) / 10
	s.MethaneEmissions = math.Round(s.MethaneEmissions)
}
