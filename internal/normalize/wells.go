package normalize

import "sort"

func aggregateWellVenting(raw RawRecord) *WellVenting {
	sec := raw.section(SectionWellVenting)
	if sec == nil {
		return nil
	}
	return &WellVenting{
		CO2MT: floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT: floatPtr(sec, "TotalCh4MetricTonsEmissions"),
		HasLiquidsUnloading: boolPtr(sec,
			"DidFacilityHaveWellVenting",
			"DoesFacilityHaveAnyWellVentingForLiquidsUnloadingSubjectToReportingIndicator"),
		Method1Used: boolPtr(sec, "WasMethod1UsedforCO2Emissions"),
		Method2Used: boolPtr(sec, "WasMethod2UsedforCO2Emissions"),
		Method3Used: boolPtr(sec, "WasMethod3UsedforCO2Emissions"),
	}
}

func aggregateWellsWithFracturing(raw RawRecord) *WellsEmissions {
	sec := raw.section(SectionWellsWithFrac)
	if sec == nil {
		return nil
	}
	return &WellsEmissions{
		CO2MT: floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT: floatPtr(sec, "TotalMethaneEmissions", "TotalCh4MetricTonsEmissions", "TotalCH4MetricTonsEmissions"),
		N2OMT: floatPtr(sec, "TotalNitrousOxideEmissions", "TotalN2OMetricTonsEmissions", "TotalN2OEmissions"),
		HasCompletions: boolPtr(sec,
			"DoesFacilityHaveAnyGasOrOilWellCompletionsOrWorkoversWithHydraulicFracturingIndicator",
			"DidFacilityHaveCompletionsWithHydraulic"),
		MissingDataUsed: boolPtr(sec, "MissingDataProceduresUsedIndicator", "MissingDataProceduresUsed"),
	}
}

func aggregateWellsWithoutFracturing(raw RawRecord) *WellsEmissions {
	sec := raw.section(SectionWellsWithoutFrac)
	if sec == nil {
		return nil
	}
	return &WellsEmissions{
		CO2MT: floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT: floatPtr(sec, "TotalMethaneEmissions", "TotalCh4MetricTonsEmissions", "TotalCH4MetricTonsEmissions"),
		N2OMT: floatPtr(sec, "TotalNitrousOxideEmissions", "TotalN2OMetricTonsEmissions", "TotalN2OEmissions"),
		HasCompletions: boolPtr(sec,
			"DoesFacilityHaveAnyGasOrOilWellCompletionsOrWorkoversWithoutHydraulicFracturingIndicator",
			"DidFacilityHaveCompletionsWithoutHydraulic"),
	}
}

// completionReducedCount resolves the reduced-emissions completion count for
// a row: explicit counts win, otherwise it is derived from the yes/no
// reduced-emissions flag and the row's total completions.
func completionReducedCount(row map[string]any) (float64, bool) {
	if n, ok := floatOf(row,
		"NumberOfReducedEmissionsCompletions",
		"TotalNumberOfReducedEmissionsCompletions",
		"TotalReducedEmissionsCompletions"); ok {
		return n, true
	}
	flag, flagOK := boolOf(row, "ReducedEmissionCompletions", "ReducedEmissionCompletionsIndicator")
	tot, totOK := floatOf(row, "TotalCompletions", "TotalNumberOfCompletions")
	if flagOK && flag && totOK {
		return tot, true
	}
	if flagOK && !flag {
		return 0, true
	}
	return 0, false
}

func completionNonReducedCount(row map[string]any) (float64, bool) {
	if n, ok := floatOf(row,
		"NumberOfNonReducedEmissionsCompletions",
		"TotalNumberOfNonReducedEmissionsCompletions",
		"TotalNonReducedEmissionsCompletions"); ok {
		return n, true
	}
	rec, recOK := completionReducedCount(row)
	tot, totOK := floatOf(row, "TotalCompletions", "TotalNumberOfCompletions")
	if recOK && totOK {
		n := tot - rec
		if n < 0 {
			n = 0
		}
		return n, true
	}
	return 0, false
}

type completionsBuilder struct {
	bySubBasin map[string]*completionsBucket
	totals     CompletionsTotals
	equations  stringSet
}

type completionsBucket struct {
	CompletionsBucket
	equations stringSet
	wellTypes stringSet
	oilOrGas  stringSet
}

func aggregateCompletions(raw RawRecord) *Completions {
	rows := raw.rows(SectionCompletionRows)
	if len(rows) == 0 {
		return nil
	}

	b := &completionsBuilder{
		bySubBasin: make(map[string]*completionsBucket),
		equations:  make(stringSet),
	}

	for _, row := range rows {
		sb := subBasinOf(row)

		rec, _ := completionReducedCount(row)
		nrec, _ := completionNonReducedCount(row)
		ch4, _ := floatOf(row, "AnnualMethaneEmissions", "AnnualCH4Emissions", "TotalMethaneEmissions", "TotalCh4Emissions")
		co2, _ := floatOf(row, "AnnualCarbonDioxideEmissions", "AnnualCO2Emissions")
		n2o, _ := floatOf(row, "AnnualNitrousOxideEmissions", "AnnualN2OEmissions")
		gas, _ := floatOf(row, "AnnualGasEmissions")
		totc, _ := floatOf(row, "TotalCompletions", "TotalNumberOfCompletions")

		bucket, ok := b.bySubBasin[sb]
		if !ok {
			bucket = &completionsBucket{
				CompletionsBucket: CompletionsBucket{SubBasinID: sb},
				equations:         make(stringSet),
				wellTypes:         make(stringSet),
				oilOrGas:          make(stringSet),
			}
			b.bySubBasin[sb] = bucket
		}

		bucket.TotalCompletions += totc
		bucket.ReducedEmissions += rec
		bucket.NonReducedEmissions += nrec
		bucket.CH4MT += ch4
		bucket.CO2MT += co2
		bucket.N2OMT += n2o
		bucket.GasSCF += gas
		if eqn, ok := stringOf(row, "EquationUsed"); ok {
			bucket.equations.add(eqn)
			b.equations.add(eqn)
		}
		if wt, ok := stringOf(row, "WellType"); ok {
			bucket.wellTypes.add(wt)
		}
		if og, ok := stringOf(row, "OilOrGasWell"); ok {
			bucket.oilOrGas.add(og)
		}
		if flared, ok := boolOf(row, "IsGasFlared", "GasFlared"); ok && flared {
			bucket.AnyGasFlared = true
		}

		b.totals.ReducedEmissions += rec
		b.totals.NonReducedEmissions += nrec
		b.totals.CH4MT += ch4
		b.totals.CO2MT += co2
		b.totals.N2OMT += n2o
		b.totals.GasSCF += gas
	}

	out := &Completions{Totals: b.totals}
	out.Totals.EquationsUsed = b.equations.sorted()
	for _, bucket := range b.bySubBasin {
		bucket.EquationsUsed = bucket.equations.sorted()
		bucket.WellTypes = bucket.wellTypes.sorted()
		bucket.OilOrGas = bucket.oilOrGas.sorted()
		out.BySubBasin = append(out.BySubBasin, bucket.CompletionsBucket)
	}
	sort.Slice(out.BySubBasin, func(i, j int) bool {
		return out.BySubBasin[i].SubBasinID < out.BySubBasin[j].SubBasinID
	})
	return out
}

func aggregateProductionWells(raw RawRecord) *ProductionWells {
	rows := raw.rows(SectionProductionWellRows)
	if len(rows) == 0 {
		return nil
	}

	bySB := make(map[string]*ProductionWellBucket)
	byFormation := make(map[string]*FormationBucket)
	var totals ProductionWellTotals

	for _, row := range rows {
		sb := subBasinOf(row)
		county, _ := stringOf(row, "SubBasinCounty")
		formation, ok := stringOf(row, "SubBasinFormationType")
		if !ok {
			formation = unknownSubBasin
		}

		eoy, _ := floatOf(row, "WellProducingEndOfYear")
		acq, _ := floatOf(row, "ProducingWellsAcquired")
		div, _ := floatOf(row, "ProducingWellsDivested")
		comp, _ := floatOf(row, "WellsCompleted")
		rem, _ := floatOf(row, "WellRemovedFromProduction")

		totals.ProducingEOY += eoy
		totals.Acquired += acq
		totals.Divested += div
		totals.Completed += comp
		totals.Removed += rem

		bucket, okSB := bySB[sb]
		if !okSB {
			bucket = &ProductionWellBucket{SubBasinID: sb, County: county, FormationType: formation}
			bySB[sb] = bucket
		}
		bucket.ProducingEOY += eoy
		bucket.Acquired += acq
		bucket.Divested += div
		bucket.Completed += comp
		bucket.Removed += rem

		fb, okF := byFormation[formation]
		if !okF {
			fb = &FormationBucket{FormationType: formation}
			byFormation[formation] = fb
		}
		fb.WellCount += eoy
	}

	out := &ProductionWells{Totals: totals}
	for _, b := range bySB {
		out.BySubBasin = append(out.BySubBasin, *b)
	}
	sort.Slice(out.BySubBasin, func(i, j int) bool {
		return out.BySubBasin[i].SubBasinID < out.BySubBasin[j].SubBasinID
	})
	for _, b := range byFormation {
		out.ByFormation = append(out.ByFormation, *b)
	}
	sort.Slice(out.ByFormation, func(i, j int) bool {
		return out.ByFormation[i].FormationType < out.ByFormation[j].FormationType
	})
	return out
}
