package normalize

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type NormalizeSuite struct {
	suite.Suite
}

func TestNormalizeSuite(t *testing.T) {
	suite.Run(t, new(NormalizeSuite))
}

// TestFacilityIdentity verifies facility identity stamped into the raw record
// round-trips through aggregation.
func (s *NormalizeSuite) TestFacilityIdentity() {
	raw := Stamp(RawRecord{}, "1008052", 2023)
	rec := Facility(raw)
	s.Equal("1008052", rec.FacilityID)
	s.Equal(2023, rec.Year)
}

// TestAbsentSectionsStayNil verifies an empty record produces nil section
// pointers rather than zeroed aggregates.
func (s *NormalizeSuite) TestAbsentSectionsStayNil() {
	rec := Facility(RawRecord{})
	s.Nil(rec.Site)
	s.Nil(rec.Pneumatics)
	s.Nil(rec.Tanks)
	s.Nil(rec.EquipmentLeaks)
	s.Nil(rec.FlareStacks)
	s.Nil(rec.Completions)
}

func (s *NormalizeSuite) TestPneumaticDeviceType() {
	tests := []struct {
		in   string
		want string
	}{
		{"Low Bleed Devices", "low-bleed"},
		{"Continuous high-bleed pneumatic device", "high-bleed"},
		{"INTERMITTENT BLEED", "intermittent-bleed"},
		{"  Piston pump  ", "Piston pump"},
	}
	for _, tc := range tests {
		s.Equal(tc.want, pneumaticDeviceType(tc.in))
	}
}

// TestPneumaticsRows verifies device rows with no numeric content are dropped
// and the rest keep their normalized category.
func (s *NormalizeSuite) TestPneumaticsRows() {
	raw := RawRecord{
		SectionPneumatics: map[string]any{
			"TotalCh4MetricTonsEmissions": "12.5",
			rowsPneumaticDeviceTypes: []any{
				map[string]any{
					"PneumaticDeviceType": "High Bleed",
					"TotalCount":          4,
					"TotalCh4Emissions":   1.25,
				},
				map[string]any{
					"PneumaticDeviceType": "Low Bleed",
				},
			},
		},
	}
	p := aggregatePneumatics(raw)
	s.Require().NotNil(p)
	s.Require().NotNil(p.CH4MT)
	s.InDelta(12.5, *p.CH4MT, 1e-9)

	s.Require().Len(p.DeviceTypes, 1)
	s.Equal("high-bleed", p.DeviceTypes[0].DeviceType)
	s.Require().NotNil(p.DeviceTypes[0].Count)
	s.Equal(4.0, *p.DeviceTypes[0].Count)
}

// TestCompletionCounts verifies the derivation chain for reduced and
// non-reduced completion counts.
func (s *NormalizeSuite) TestCompletionCounts() {
	s.Run("explicit counts win over the flag", func() {
		row := map[string]any{
			"NumberOfReducedEmissionsCompletions": 3,
			"ReducedEmissionCompletions":          "no",
			"TotalCompletions":                    10,
		}
		n, ok := completionReducedCount(row)
		s.True(ok)
		s.Equal(3.0, n)

		nr, ok := completionNonReducedCount(row)
		s.True(ok)
		s.Equal(7.0, nr)
	})

	s.Run("flag yes assigns all completions as reduced", func() {
		row := map[string]any{
			"ReducedEmissionCompletions": "Y",
			"TotalCompletions":           6,
		}
		n, ok := completionReducedCount(row)
		s.True(ok)
		s.Equal(6.0, n)

		nr, ok := completionNonReducedCount(row)
		s.True(ok)
		s.Equal(0.0, nr)
	})

	s.Run("derived non-reduced never goes negative", func() {
		row := map[string]any{
			"NumberOfReducedEmissionsCompletions": 12,
			"TotalCompletions":                    10,
		}
		nr, ok := completionNonReducedCount(row)
		s.True(ok)
		s.Equal(0.0, nr)
	})

	s.Run("nothing resolvable reports not ok", func() {
		_, ok := completionReducedCount(map[string]any{})
		s.False(ok)
	})
}

// TestCompletionsAggregation verifies bucketing, facility totals, and set
// accumulation for the completion rows.
func (s *NormalizeSuite) TestCompletionsAggregation() {
	raw := RawRecord{
		SectionCompletionRows: []any{
			map[string]any{
				"SubBasinIdentifier":     "160A",
				"TotalCompletions":       5,
				"AnnualMethaneEmissions": 2.0,
				"EquationUsed":           "W-10A",
				"WellType":               "Vertical",
			},
			map[string]any{
				"SubBasinIdentifier":     "160A",
				"TotalCompletions":       3,
				"AnnualMethaneEmissions": 1.0,
				"EquationUsed":           "W-10B",
			},
			map[string]any{
				"TotalCompletions":       2,
				"AnnualMethaneEmissions": 0.5,
			},
		},
	}
	c := aggregateCompletions(raw)
	s.Require().NotNil(c)
	s.Require().Len(c.BySubBasin, 2)

	s.Equal("160A", c.BySubBasin[0].SubBasinID)
	s.Equal(8.0, c.BySubBasin[0].TotalCompletions)
	s.Equal([]string{"W-10A", "W-10B"}, c.BySubBasin[0].EquationsUsed)
	s.Equal([]string{"Vertical"}, c.BySubBasin[0].WellTypes)

	s.Equal("Unknown", c.BySubBasin[1].SubBasinID)
	s.InDelta(3.5, c.Totals.CH4MT, 1e-9)
}

// TestLeakComponents verifies zero-methane components are dropped and the
// remainder come back sorted by methane descending.
func (s *NormalizeSuite) TestLeakComponents() {
	raw := RawRecord{
		SectionEquipmentLeaks: map[string]any{
			"TotalCh4MetricTonsEmissions": 40.0,
			rowsLeakComponents: []any{
				map[string]any{"ComponentType": "Valves", "Ch4Emissions": 5.0},
				map[string]any{"ComponentType": "Connectors", "Ch4Emissions": 30.0},
				map[string]any{"ComponentType": "Pumps", "Ch4Emissions": 0.0},
				map[string]any{"ComponentType": "Flanges"},
			},
		},
	}
	l := aggregateEquipmentLeaks(raw)
	s.Require().NotNil(l)
	s.Require().Len(l.Components, 2)
	s.Equal("Connectors", l.Components[0].ComponentType)
	s.Equal("Valves", l.Components[1].ComponentType)
}

// TestFlareStackHeuristics verifies monitor and analyzer detection including
// the measurement method string fallbacks.
func (s *NormalizeSuite) TestFlareStackHeuristics() {
	raw := RawRecord{
		SectionFlareStackRows: []any{
			map[string]any{
				"ContinuousFlowMonitorInstalled": "yes",
				"Ch4Emissions":                   1.0,
			},
			map[string]any{
				"CompositionMeasurementMethod": "Gas analyzer sampling",
				"Ch4Emissions":                 3.0,
			},
			map[string]any{
				"FlowMeasurementMethod": "Engineering estimate",
			},
		},
	}
	f := aggregateFlareStacks(raw)
	s.Require().NotNil(f)
	s.Equal(3, f.NumStacks)
	s.Equal(1, f.WithFlowMonitor)
	s.Equal(1, f.WithGasAnalyzer)
	s.Equal(2, f.WithMonitorOrAnalyzer)
	s.Require().NotNil(f.TotalCH4MT)
	s.InDelta(4.0, *f.TotalCH4MT, 1e-9)
	s.Require().NotNil(f.AvgCH4PerStack)
	s.InDelta(2.0, *f.AvgCH4PerStack, 1e-9)
}

// TestGuessScanOrder verifies key guessing resolves the same way when more
// than one field name matches the tokens, both at the top level and one
// nesting level down.
func (s *NormalizeSuite) TestGuessScanOrder() {
	row := map[string]any{
		"AverageGasToFlareVolume": 7.0,
		"AverageGasSentToFlare":   5.0,
	}
	nested := map[string]any{
		"Details": map[string]any{
			"FlareEfficiencyPct":   0.98,
			"FlareEfficiencyRatio": 0.95,
		},
	}
	for range 50 {
		v, ok := guessFloat(row, "average", "gas", "flare")
		s.Require().True(ok)
		s.Equal(5.0, v)

		v, ok = guessFloat(nested, "efficiency")
		s.Require().True(ok)
		s.Equal(0.98, v)
	}
}

// TestSiteDetails verifies the nested address and parent company extraction.
func (s *NormalizeSuite) TestSiteDetails() {
	raw := RawRecord{
		SectionFacilitySite: map[string]any{
			"FacilitySite": map[string]any{"FacilitySiteName": "Permian Hub 12"},
			"LocationAddress": map[string]any{
				"LocalityName":  "Midland",
				"CountyName":    "MIDLAND",
				"StateIdentity": map[string]any{"StateCode": "TX"},
			},
			"ParentCompanyDetails": map[string]any{
				"ParentCompany": map[string]any{"ParentCompanyLegalName": "Example Energy LLC"},
			},
		},
	}
	site := aggregateSiteDetails(raw)
	s.Require().NotNil(site)
	s.Equal("Permian Hub 12", site.FacilityName)
	s.Equal("Midland", site.City)
	s.Equal("MIDLAND", site.County)
	s.Equal("TX", site.StateCode)
	s.Require().NotNil(site.ParentCompany)
	s.Equal("Example Energy LLC", site.ParentCompany.LegalName)
}

// TestDehydratorSpellings verifies both source spellings of the desiccant
// group resolve.
func (s *NormalizeSuite) TestDehydratorSpellings() {
	for _, key := range []string{"DessicantDehydrators", "DesiccantDehydrators"} {
		raw := RawRecord{
			SectionDehydrators: map[string]any{
				key: map[string]any{"TotalCh4MetricTonsEmissions": 1.0},
			},
		}
		d := aggregateDehydrators(raw)
		s.Require().NotNil(d, key)
		s.Require().NotNil(d.Desiccant, key)
		s.Require().NotNil(d.Desiccant.CH4MT, key)
		s.InDelta(1.0, *d.Desiccant.CH4MT, 1e-9)
	}
}

// TestSingleRowAsMap verifies upstream's bare-map row lists are accepted.
func (s *NormalizeSuite) TestSingleRowAsMap() {
	raw := RawRecord{
		SectionProductionWellRows: map[string]any{
			"SubBasinIdentifier":     "430",
			"WellProducingEndOfYear": 120,
		},
	}
	p := aggregateProductionWells(raw)
	s.Require().NotNil(p)
	s.Equal(120.0, p.Totals.ProducingEOY)
	s.Require().Len(p.BySubBasin, 1)
	s.Equal("430", p.BySubBasin[0].SubBasinID)
}
