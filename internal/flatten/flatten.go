// Package flatten projects a typed facility record onto the flat fact map
// the rule engine consumes. Every fact is a scalar or a []string membership
// list; nesting never survives flattening.
//
// Resolution per fact: reported value first, computed fallback second, and a
// zero default for counts and quantities only when the owning section was
// reported at all. An absent section leaves its keys out of the map entirely
// so missing-data rules can fire. Presence flags are only set when the
// source record answered the question.
package flatten

import (
	"sort"

	"methanewatch/internal/normalize"
)

// FactMap is the flat fact set for one facility. Built fresh per facility
// and read-only once built.
type FactMap map[string]any

// MethaneSourceKeys is the fixed list of per-subsystem methane facts summed
// into a facility's total, in addition to leaks_mt_ch4.
var MethaneSourceKeys = []string{
	"pneumatic_mt_ch4",
	"well_venting_mt_ch4",
	"associated_gas_mt_ch4",
	"centrifugal_compressor_mt_ch4",
	"recip_compressor_mt_ch4",
	"flare_mt_ch4",
	"wells_with_frac_mt_ch4",
	"wells_without_frac_mt_ch4",
	"tank_storage_mt_ch4",
}

// Facility flattens one combined facility record.
func Facility(rec *normalize.FacilityRecord) FactMap {
	m := FactMap{}
	if rec == nil {
		return m
	}
	if rec.FacilityID != "" {
		m["facility_id"] = rec.FacilityID
	}
	if rec.Year != 0 {
		m["year"] = float64(rec.Year)
	}

	flattenSite(m, rec.Site)
	flattenPneumatics(m, rec.Pneumatics)
	flattenWells(m, rec)
	flattenGas(m, rec)
	flattenFlares(m, rec.FlareStacks)
	flattenCompressors(m, rec)
	flattenLeaks(m, rec.EquipmentLeaks)
	flattenTanks(m, rec.Tanks)
	return m
}

func setNum(m FactMap, key string, p *float64) {
	if p != nil {
		m[key] = *p
	}
}

// setNumOrZero applies the quantity default: the owning section reported, so
// an unreported quantity counts as zero.
func setNumOrZero(m FactMap, key string, p *float64) {
	if p != nil {
		m[key] = *p
		return
	}
	m[key] = 0.0
}

func setBool(m FactMap, key string, p *bool) {
	if p != nil {
		m[key] = *p
	}
}

func setStr(m FactMap, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func flattenSite(m FactMap, site *normalize.SiteDetails) {
	if site == nil {
		return
	}
	setStr(m, "facility_name", site.FacilityName)
	setStr(m, "site_type", site.SiteType)
	setStr(m, "state_code", site.StateCode)
	setStr(m, "county", site.County)
	setStr(m, "city", site.City)
	setStr(m, "primary_naics", site.PrimaryNAICS)
	setBool(m, "has_cogeneration_unit", site.CogenerationUnit)
	if site.ParentCompany != nil {
		setStr(m, "parent_company", site.ParentCompany.LegalName)
	}
}

func flattenPneumatics(m FactMap, p *normalize.Pneumatics) {
	if p == nil {
		return
	}
	setNumOrZero(m, "pneumatic_mt_ch4", p.CH4MT)
	setNum(m, "pneumatic_mt_co2", p.CO2MT)
	setBool(m, "has_high_bleed_devices", p.HasHighBleed)
	setBool(m, "has_intermittent_bleed_devices", p.HasIntermittent)
	setBool(m, "has_low_bleed_devices", p.HasLowBleed)

	counts := map[string]float64{}
	for _, row := range p.DeviceTypes {
		if row.Count == nil {
			continue
		}
		counts[row.DeviceType] += *row.Count
	}
	m["count_high_bleed_devices"] = counts["high-bleed"]
	m["count_low_bleed_devices"] = counts["low-bleed"]
	m["count_intermittent_bleed_devices"] = counts["intermittent-bleed"]
}

func flattenWells(m FactMap, rec *normalize.FacilityRecord) {
	if wv := rec.WellVenting; wv != nil {
		setNumOrZero(m, "well_venting_mt_ch4", wv.CH4MT)
		setBool(m, "has_liquids_unloading", wv.HasLiquidsUnloading)
	}
	if w := rec.WellsWithFracturing; w != nil {
		setNumOrZero(m, "wells_with_frac_mt_ch4", w.CH4MT)
		setBool(m, "has_fractured_completions", w.HasCompletions)
	}
	if w := rec.WellsWithoutFracturing; w != nil {
		setNumOrZero(m, "wells_without_frac_mt_ch4", w.CH4MT)
		setBool(m, "has_unfractured_completions", w.HasCompletions)
	}
	if c := rec.Completions; c != nil {
		var total float64
		for _, b := range c.BySubBasin {
			total += b.TotalCompletions
		}
		m["completions_total"] = total
		m["completions_reduced"] = c.Totals.ReducedEmissions
		m["completions_non_reduced"] = c.Totals.NonReducedEmissions
		m["completions_mt_ch4"] = c.Totals.CH4MT
		if len(c.Totals.EquationsUsed) > 0 {
			m["completion_equations"] = c.Totals.EquationsUsed
		}
	}
	if p := rec.ProductionWells; p != nil {
		m["producing_wells_eoy"] = p.Totals.ProducingEOY
		m["wells_completed"] = p.Totals.Completed
	}
}

func flattenGas(m FactMap, rec *normalize.FacilityRecord) {
	if g := rec.AssociatedGas; g != nil {
		setNumOrZero(m, "associated_gas_mt_ch4", g.CH4MT)
		setBool(m, "has_associated_gas_venting", g.Present)
	}
	if a := rec.AcidGas; a != nil {
		setNumOrZero(m, "acid_gas_mt_ch4", a.CH4MT)
	}
	if d := rec.Dehydrators; d != nil {
		var total float64
		if d.SmallGlycol != nil && d.SmallGlycol.CH4MT != nil {
			total += *d.SmallGlycol.CH4MT
		}
		if d.Desiccant != nil && d.Desiccant.CH4MT != nil {
			total += *d.Desiccant.CH4MT
		}
		m["dehydrator_mt_ch4"] = total
	}
}

func flattenFlares(m FactMap, f *normalize.FlareStacks) {
	if f == nil {
		return
	}
	m["flare_stack_count"] = float64(f.NumStacks)
	m["flare_stacks_with_flow_monitor"] = float64(f.WithFlowMonitor)
	m["flare_stacks_with_gas_analyzer"] = float64(f.WithGasAnalyzer)
	m["flare_stacks_monitored"] = float64(f.WithMonitorOrAnalyzer)
	setNumOrZero(m, "flare_mt_ch4", f.TotalCH4MT)
	setNum(m, "avg_flare_combustion_efficiency", f.AvgCombustionEfficiency)
	setNum(m, "avg_flare_ch4_mole_fraction", f.AvgCH4MoleFraction)
}

func flattenCompressors(m FactMap, rec *normalize.FacilityRecord) {
	if c := rec.Reciprocating; c != nil {
		setNumOrZero(m, "recip_compressor_mt_ch4", c.CH4MT)
		setNumOrZero(m, "recip_compressor_count", c.Count)
		setBool(m, "has_reciprocating_compressors", c.Present)
	}
	if c := rec.Centrifugal; c != nil {
		setNumOrZero(m, "centrifugal_compressor_mt_ch4", c.CH4MT)
		setNumOrZero(m, "centrifugal_compressor_count", c.Count)
		setBool(m, "has_centrifugal_compressors", c.Present)
	}
	// operating_hours favors the reciprocating fleet; rules that reference it
	// were written against reciprocating compressor standards.
	if c := rec.Reciprocating; c != nil && c.OperatingHours != nil {
		m["operating_hours"] = *c.OperatingHours
	} else if c := rec.Centrifugal; c != nil && c.OperatingHours != nil {
		m["operating_hours"] = *c.OperatingHours
	}
}

func flattenLeaks(m FactMap, l *normalize.EquipmentLeaks) {
	if l == nil {
		return
	}
	var compSum float64
	for _, c := range l.Components {
		compSum += c.CH4MT
	}
	if l.CH4MT != nil {
		m["leaks_mt_ch4"] = *l.CH4MT
	} else {
		m["leaks_mt_ch4"] = compSum
	}
	m["leaks_component_mt_ch4"] = compSum
	setNumOrZero(m, "count_leaking_components", l.TotalLeaksFound)
	setBool(m, "leak_surveys_used", l.ViaSurveys)
	setBool(m, "leak_population_counts_used", l.ViaPopulationCounts)

	var methods []string
	for name, flag := range map[string]*bool{
		"optical_gas_imaging": l.DetectionMethods.OpticalGasImaging,
		"method_21":           l.DetectionMethods.Method21,
		"infrared_laser":      l.DetectionMethods.InfraredLaser,
		"acoustic":            l.DetectionMethods.Acoustic,
	} {
		if flag != nil && *flag {
			methods = append(methods, name)
		}
	}
	if len(methods) > 0 {
		sort.Strings(methods)
		m["leak_detection_methods"] = methods
	}
}

func flattenTanks(m FactMap, t *normalize.Tanks) {
	if t == nil {
		return
	}
	c := t.Combined

	// Reported total wins over the rebuilt mass balance.
	if c.ReportedCH4MT != nil {
		m["tank_storage_mt_ch4"] = *c.ReportedCH4MT
	} else {
		m["tank_storage_mt_ch4"] = c.TotalCH4MT
	}
	m["tank_computed_mt_ch4"] = c.TotalCH4MT
	m["tank_count"] = c.TankCount
	m["tank_count_vented"] = c.UncontrolledCount
	m["tank_count_vru"] = c.VRUControlCount
	m["tank_count_flared"] = c.FlareControlCount
	m["tank_flaring_mt_ch4"] = c.FlaringCH4MT
	m["tank_recovered_mt_ch4"] = c.RecoveredCH4MT
	m["tank_uncontrolled_mt_ch4"] = c.UncontrolledCH4MT

	if s := t.Summary; s != nil {
		setBool(m, "has_malfunctioning_dump_valves", s.MalfunctioningDumpValves)
		var methods []string
		for name, flag := range map[string]*bool{
			"method_1": s.Method1Used,
			"method_2": s.Method2Used,
			"method_3": s.Method3Used,
		} {
			if flag != nil && *flag {
				methods = append(methods, name)
			}
		}
		if len(methods) > 0 {
			sort.Strings(methods)
			m["tank_calc_methods"] = methods
		}
	}
}
