// Package normalize turns raw per-facility reporting records into a typed,
// aggregated facility record. The input is whatever the upstream parser
// extracted: a nested map keyed by subsystem section name, where each section
// is a map of loosely typed scalars and may carry lists of repeated row maps.
// Absent sections mean "no data reported" and come out as nil section
// pointers, which downstream code treats differently from zeroed records.
package normalize

import (
	"sort"

	"methanewatch/internal/coerce"
)

// RawRecord is the untyped nested record produced by upstream parsing for a
// single facility-year. It is never mutated here.
type RawRecord map[string]any

// Section names as produced by the upstream parser. Row-list keys live inside
// their parent section, mirroring the source report structure.
const (
	SectionFacilitySite       = "FacilitySiteDetails"
	SectionPneumatics         = "PneumaticDeviceVentingDetails"
	SectionWellVenting        = "WellVentingDetails"
	SectionWellsWithFrac      = "WellsWithFracturingDetails"
	SectionWellsWithoutFrac   = "WellsWithoutFracturingDetails"
	SectionCompletionRows     = "WellCompletionsWithHydraulicFracturingTabgRowDetails"
	SectionProductionWellRows = "OnshoreProductionRequirementsSubBasinRowDetails"
	SectionAssociatedGas      = "AssociatedGasVentingFlaringDetails"
	SectionFlareStackRows     = "UniqueFlareStacksRowDetails"
	SectionCentrifugal        = "CentrifugalCompressorsDetails"
	SectionReciprocating      = "ReciprocatingCompressorsDetails"
	SectionEquipmentLeaks     = "OtherEmissionsFromEquipmentLeaksDetails"
	SectionAcidGasRemoval     = "AcidGasRemovalUnitsDetails"
	SectionDehydrators        = "DehydratorsDetails"
	SectionTanks              = "AtmosphericTanksDetails"

	rowsPneumaticDeviceTypes = "PneumaticDeviceTypesRowDetails"
	rowsLeakComponents       = "OnshorePetroleumAndNaturalGasProductionAndGatheringAndBoostingRowDetails"
	rowsTanksMethod12        = "AtmosphericTanksCalculationMethodOneOrTwoSubBasinRowDetails"
	rowsTanksMethod3Flaring  = "AtmosphericTanksCalcMethodThreeWithFlaringRowDetails"
	rowsTanksMethod3Overview = "AtmosphericTanksCalculationMethodThreeRowDetails"
	rowsTanksMethod3NoFlare  = "AtmosphericTanksCalcMethodThreeNoFlaringRowDetails"
)

// unknownSubBasin is the deliberate fallback bucket for rows with no
// sub-basin identifier; it is not an error condition.
const unknownSubBasin = "Unknown"

func (r RawRecord) section(name string) map[string]any {
	if r == nil {
		return nil
	}
	return asMap(r[name])
}

func (r RawRecord) rows(name string) []map[string]any {
	if r == nil {
		return nil
	}
	return asRows(r[name])
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asRows accepts a list of row maps, a list of any, or a single row map.
// Upstream emits a bare map when the source report had exactly one row.
func asRows(v any) []map[string]any {
	switch rows := v.(type) {
	case nil:
		return nil
	case []map[string]any:
		return rows
	case []any:
		out := make([]map[string]any, 0, len(rows))
		for _, e := range rows {
			if m := asMap(e); m != nil {
				out = append(out, m)
			}
		}
		return out
	case map[string]any:
		return []map[string]any{rows}
	}
	return nil
}

func sectionRows(sec map[string]any, name string) []map[string]any {
	if sec == nil {
		return nil
	}
	return asRows(sec[name])
}

// firstOf resolves a logical field against an ordered list of candidate key
// names (source schema drifts across reporting years). The first key present
// with a non-empty value wins; candidates are never merged.
func firstOf(row map[string]any, names ...string) (any, bool) {
	for _, n := range names {
		v, ok := row[n]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr {
			if _, ok := coerce.String(s); !ok {
				continue
			}
		}
		return v, true
	}
	return nil, false
}

func floatOf(row map[string]any, names ...string) (float64, bool) {
	v, ok := firstOf(row, names...)
	if !ok {
		return 0, false
	}
	return coerce.Float(v)
}

func boolOf(row map[string]any, names ...string) (bool, bool) {
	v, ok := firstOf(row, names...)
	if !ok {
		return false, false
	}
	return coerce.Bool(v)
}

func stringOf(row map[string]any, names ...string) (string, bool) {
	v, ok := firstOf(row, names...)
	if !ok {
		return "", false
	}
	return coerce.String(v)
}

func floatPtr(row map[string]any, names ...string) *float64 {
	if f, ok := floatOf(row, names...); ok {
		return &f
	}
	return nil
}

func boolPtr(row map[string]any, names ...string) *bool {
	if b, ok := boolOf(row, names...); ok {
		return &b
	}
	return nil
}

// subBasinOf resolves the bucket identifier for a row, defaulting to the
// Unknown bucket when the row carries none.
func subBasinOf(row map[string]any) string {
	if sb, ok := stringOf(row, "SubBasinIdentifier", "SubBasinID", "SubBasinId"); ok {
		return sb
	}
	return unknownSubBasin
}

// stringSet accumulates identity values (methodology names, software names)
// into a deduplicated, lexicographically sorted list.
type stringSet map[string]struct{}

func (s stringSet) add(v string) {
	s[v] = struct{}{}
}

func (s stringSet) sorted() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// meanAcc averages the observed (non-missing) values of a rate or efficiency
// field; no observations means no value.
type meanAcc struct {
	sum float64
	n   int
}

func (m *meanAcc) add(v float64) {
	m.sum += v
	m.n++
}

func (m *meanAcc) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := m.sum / float64(m.n)
	return &v
}

// minVal and maxVal leave the extreme undefined until a value is seen.
func minVal(cur *float64, v float64) *float64 {
	if cur == nil || v < *cur {
		return &v
	}
	return cur
}

func maxVal(cur *float64, v float64) *float64 {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}
