package normalize

import "sort"

// aggregateTanks builds the full atmospheric tank picture: the top-level
// summary, the three calculation method aggregates, and the reconciled
// combined totals. The section being absent yields nil; an empty section
// still yields a record with a zeroed Combined block.
func aggregateTanks(raw RawRecord) *Tanks {
	sec := raw.section(SectionTanks)
	if sec == nil {
		return nil
	}

	out := &Tanks{
		Summary:          tankSummary(sec),
		Method12:         aggregateTanksMethod12(raw, sec),
		Method3Flaring:   aggregateTanksMethod3Flaring(raw, sec),
		Method3NoFlaring: aggregateTanksMethod3NoFlaring(raw, sec),
	}
	out.Combined = combineTankTotals(out)
	return out
}

func tankSummary(sec map[string]any) *TankSummary {
	return &TankSummary{
		CO2MT:                    floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT:                    floatPtr(sec, "TotalCh4MetricTonsEmissions"),
		N2OMT:                    floatPtr(sec, "TotalN2OMetricTonsEmissions"),
		Method1Used:              boolPtr(sec, "CalcMethod1Used"),
		Method2Used:              boolPtr(sec, "CalcMethod2Used"),
		Method3Used:              boolPtr(sec, "CalcMethod3Used"),
		MalfunctioningDumpValves: boolPtr(sec, "MalfunctioningDumpValves"),
		MissingDataUsed:          boolPtr(sec, "MissingDataProceduresUsed"),
	}
}

// tankRows resolves a row list that may sit inside the tank section or at the
// top of the record, depending on how upstream flattened the report.
func tankRows(raw RawRecord, sec map[string]any, name string) []map[string]any {
	if rows := sectionRows(sec, name); len(rows) > 0 {
		return rows
	}
	return raw.rows(name)
}

// m12Acc accumulates one sub-basin bucket for calculation methods 1 and 2.
// Mean fields stay as accumulators until finalize.
type m12Acc struct {
	bucket   TankMethod12Bucket
	temps    meanAcc
	psigs    meanAcc
	apis     meanAcc
	methods  stringSet
	software stringSet
	minCH4   *float64
	maxCH4   *float64
	minCO2   *float64
	maxCO2   *float64
}

func aggregateTanksMethod12(raw RawRecord, sec map[string]any) *TankMethod12 {
	rows := tankRows(raw, sec, rowsTanksMethod12)
	if len(rows) == 0 {
		return nil
	}

	bySB := map[string]*m12Acc{}
	out := &TankMethod12{}
	t := &out.Totals
	totalMethods := stringSet{}
	totalSoftware := stringSet{}

	for _, row := range rows {
		sb := subBasinOf(row)
		acc := bySB[sb]
		if acc == nil {
			acc = &m12Acc{methods: stringSet{}, software: stringSet{}}
			acc.bucket.SubBasinID = sb
			bySB[sb] = acc
		}
		b := &acc.bucket

		if m, ok := stringOf(row, "CalculationMethodology", "CalculationMethod", "EquationMethod"); ok {
			acc.methods.add(m)
			totalMethods.add(m)
		}
		if s, ok := stringOf(row, "SoftwarePackageUsed", "CalculationSoftware", "CalcSoftware"); ok {
			acc.software.add(s)
			totalSoftware.add(s)
		}

		nSep, _ := floatOf(row, "NumberOfWellHeadSeparators")
		b.WellheadSeparators += nSep
		t.WellheadSeparators += nSep

		if v, ok := floatOf(row, "AverageSeparatorTemperature"); ok {
			acc.temps.add(v)
		}
		if v, ok := floatOf(row, "AveragePressure"); ok {
			acc.psigs.add(v)
		}
		if v, ok := floatOf(row, "AverageAPIGravity"); ok {
			acc.apis.add(v)
		}

		cntVRU, _ := floatOf(row,
			"TanksWithVaporRecovery",
			"CountOfTanksControlledWithVaporRecoverySystems",
			"CountOfTanksThatControlEmissionsWithVaporRecoverySystems")
		cntFlare, _ := floatOf(row,
			"TanksWithFlaring",
			"CountOfTanksWithFlaringEmissionControlMeasures",
			"CountOfTanksVentedToFlares")
		b.VRUControlCount += cntVRU
		b.FlareControlCount += cntFlare
		t.VRUControlCount += cntVRU
		t.FlareControlCount += cntFlare

		if v, ok := floatOf(row, "MinimumFlashMethaneConcentration"); ok {
			acc.minCH4 = minVal(acc.minCH4, v)
			t.MinFlashCH4 = minVal(t.MinFlashCH4, v)
		}
		if v, ok := floatOf(row, "MaximumFlashMethaneConcentration"); ok {
			acc.maxCH4 = maxVal(acc.maxCH4, v)
			t.MaxFlashCH4 = maxVal(t.MaxFlashCH4, v)
		}
		if v, ok := floatOf(row, "MinimumFlashGasCarbonDioxideConcentration"); ok {
			acc.minCO2 = minVal(acc.minCO2, v)
			t.MinFlashCO2 = minVal(t.MinFlashCO2, v)
		}
		if v, ok := floatOf(row, "MaximumFlashGasCarbonDioxideConcentration"); ok {
			acc.maxCO2 = maxVal(acc.maxCO2, v)
			t.MaxFlashCO2 = maxVal(t.MaxFlashCO2, v)
		}

		flrCO2, _ := floatOf(row, "FlaringCarbonDioxideEmissions", "AnnualCarbonDioxideEmissionsFromFlaring")
		flrCH4, _ := floatOf(row, "FlaringCh4Emissions", "AnnualMethaneEmissionsFromFlaring")
		flrN2O, _ := floatOf(row, "FlaringN2OEmissions", "AnnualNitrousOxideEmissionsFromFlaring")
		b.FlaringCO2MT += flrCO2
		b.FlaringCH4MT += flrCH4
		b.FlaringN2OMT += flrN2O
		t.FlaringCO2MT += flrCO2
		t.FlaringCH4MT += flrCH4
		t.FlaringN2OMT += flrN2O

		oil, _ := floatOf(row, "TotalVolumeOfOil")
		recCO2, _ := floatOf(row, "AnnualCarbonDioxideRecovered")
		recCH4, _ := floatOf(row, "AnnualMethaneRecovered")
		vrCO2, _ := floatOf(row, "VaporRecoveryCO2Emissions")
		vrCH4, _ := floatOf(row, "VaporRecoveryCH4Emissions")
		b.OilVolumeBBL += oil
		b.CO2RecoveredMT += recCO2
		b.CH4RecoveredMT += recCH4
		b.VaporRecoveryCO2MT += vrCO2
		b.VaporRecoveryCH4MT += vrCH4
		t.OilVolumeBBL += oil
		t.CO2RecoveredMT += recCO2
		t.CH4RecoveredMT += recCH4
		t.VaporRecoveryCO2MT += vrCO2
		t.VaporRecoveryCH4MT += vrCH4

		tankCnt, _ := floatOf(row, "AtmosphericTankCount", "CountOfAtmosphericTanks")
		notPad, _ := floatOf(row, "NotOnWellPadTankCount")
		b.TankCount += tankCnt
		b.NotOnWellPadTanks += notPad
		t.TankCount += tankCnt
		t.NotOnWellPadTanks += notPad

		anyVRU, _ := boolOf(row, "WereEmissionsVaporRecovery")
		anyAtm, _ := boolOf(row, "WereEmissionsAtmosphere")
		anyFlr, _ := boolOf(row, "WereEmissionsFlares")
		delay, _ := boolOf(row, "TwoYearDelayIndicator")
		b.AnyVRU = b.AnyVRU || anyVRU
		b.AnyAtmosphere = b.AnyAtmosphere || anyAtm
		b.AnyFlares = b.AnyFlares || anyFlr
		b.AnyTwoYearDelay = b.AnyTwoYearDelay || delay
		t.AnyVRU = t.AnyVRU || anyVRU
		t.AnyAtmosphere = t.AnyAtmosphere || anyAtm
		t.AnyFlares = t.AnyFlares || anyFlr
		t.AnyTwoYearDelay = t.AnyTwoYearDelay || delay
	}

	for _, acc := range bySB {
		b := acc.bucket
		b.Methodologies = acc.methods.sorted()
		b.Software = acc.software.sorted()
		b.AvgSeparatorTempF = acc.temps.value()
		b.AvgSeparatorPSIG = acc.psigs.value()
		b.AvgAPIGravity = acc.apis.value()
		b.MinFlashCH4 = acc.minCH4
		b.MaxFlashCH4 = acc.maxCH4
		b.MinFlashCO2 = acc.minCO2
		b.MaxFlashCO2 = acc.maxCO2
		out.BySubBasin = append(out.BySubBasin, b)
	}
	sort.Slice(out.BySubBasin, func(i, j int) bool {
		return out.BySubBasin[i].SubBasinID < out.BySubBasin[j].SubBasinID
	})
	t.Methodologies = totalMethods.sorted()
	t.Software = totalSoftware.sorted()
	return out
}

func aggregateTanksMethod3Flaring(raw RawRecord, sec map[string]any) *TankMethod3Flaring {
	rows := tankRows(raw, sec, rowsTanksMethod3Flaring)
	over := tankRows(raw, sec, rowsTanksMethod3Overview)
	if len(rows) == 0 && len(over) == 0 {
		return nil
	}

	out := &TankMethod3Flaring{}
	if len(rows) > 0 {
		bySB := map[string]*TankFlareBucket{}
		totals := &TankFlareTotals{}
		for _, row := range rows {
			sb := subBasinOf(row)
			b := bySB[sb]
			if b == nil {
				b = &TankFlareBucket{SubBasinID: sb}
				bySB[sb] = b
			}
			cnt, _ := floatOf(row,
				"EmissionsControlWithFlareCount",
				"CountOfTanksWithFlaringEmissionControlMeasures",
				"CountOfTanksVentedToFlares")
			co2, _ := floatOf(row, "Co2Emissions", "AnnualCarbonDioxideEmissions", "AnnualCO2Emissions")
			ch4, _ := floatOf(row, "Ch4Emissions", "AnnualMethaneEmissions", "AnnualCH4Emissions")
			n2o, _ := floatOf(row, "N2OEmissions", "AnnualNitrousOxideEmissions", "AnnualN2OEmissions")

			b.FlareControlCount += cnt
			b.CO2MT += co2
			b.CH4MT += ch4
			b.N2OMT += n2o
			totals.FlareControlCount += cnt
			totals.CO2MT += co2
			totals.CH4MT += ch4
			totals.N2OMT += n2o
		}
		for _, b := range bySB {
			out.BySubBasin = append(out.BySubBasin, *b)
		}
		sort.Slice(out.BySubBasin, func(i, j int) bool {
			return out.BySubBasin[i].SubBasinID < out.BySubBasin[j].SubBasinID
		})
		out.Totals = totals
	}

	if len(over) > 0 {
		ov := &TankMethod3Overview{}
		var frFlare, frVapor meanAcc
		for _, row := range over {
			if v, ok := floatOf(row, "FractionOfOilThroughputWithFlaring"); ok {
				frFlare.add(v)
			}
			if v, ok := floatOf(row, "FractionOfOilThroughputWithVapor"); ok {
				frVapor.add(v)
			}
			tc, _ := floatOf(row, "AtmosphericTankCount")
			gw, _ := floatOf(row, "GasWellsCount")
			wg, _ := floatOf(row, "WellsWithoutGasCount")
			oil, _ := floatOf(row, "AnnualOilThroughput")
			delay, _ := boolOf(row, "TwoYearDelayIndicator")
			ov.TankCount += tc
			ov.GasWellsCount += gw
			ov.WellsWithoutGasCount += wg
			ov.OilThroughputBBL += oil
			ov.AnyTwoYearDelay = ov.AnyTwoYearDelay || delay
		}
		ov.FractionOilWithFlaring = frFlare.value()
		ov.FractionOilWithVapor = frVapor.value()
		out.Overview = ov
	}
	return out
}

func aggregateTanksMethod3NoFlaring(raw RawRecord, sec map[string]any) *TankMethod3NoFlaring {
	rows := tankRows(raw, sec, rowsTanksMethod3NoFlare)
	if len(rows) == 0 {
		return nil
	}

	bySB := map[string]*TankUncontrolledBucket{}
	out := &TankMethod3NoFlaring{}
	for _, row := range rows {
		sb := subBasinOf(row)
		b := bySB[sb]
		if b == nil {
			b = &TankUncontrolledBucket{SubBasinID: sb}
			bySB[sb] = b
		}
		cnt, _ := floatOf(row, "EmissionsNotControlledWithFlareCount")
		co2, _ := floatOf(row, "Co2Emissions")
		ch4, _ := floatOf(row, "Ch4Emissions")
		b.UncontrolledCount += cnt
		b.CO2MT += co2
		b.CH4MT += ch4
		out.Totals.UncontrolledCount += cnt
		out.Totals.CO2MT += co2
		out.Totals.CH4MT += ch4
	}
	for _, b := range bySB {
		out.BySubBasin = append(out.BySubBasin, *b)
	}
	sort.Slice(out.BySubBasin, func(i, j int) bool {
		return out.BySubBasin[i].SubBasinID < out.BySubBasin[j].SubBasinID
	})
	return out
}

// combineTankTotals reconciles the three calculation method aggregates into
// one facility-level totals record. Tanks vented to atmosphere under methods
// 1/2 count as uncontrolled: tank count minus VRU- and flare-controlled. That
// difference can go negative when control counts overlap tank counts in the
// source data; the negative value is kept as a data quality signal rather
// than clamped.
func combineTankTotals(t *Tanks) TankCombined {
	var c TankCombined

	if m := t.Method12; m != nil {
		tot := m.Totals
		c.TankCount += tot.TankCount
		c.FlaringCH4MT += tot.FlaringCH4MT
		c.RecoveredCH4MT += tot.CH4RecoveredMT
		c.VRUControlCount += tot.VRUControlCount
		c.FlareControlCount += tot.FlareControlCount
		if tot.AnyAtmosphere {
			c.UncontrolledCount += tot.TankCount - (tot.VRUControlCount + tot.FlareControlCount)
		}
	}

	if m := t.Method3Flaring; m != nil {
		if m.Totals != nil {
			c.FlareControlCount += m.Totals.FlareControlCount
			c.FlaringCH4MT += m.Totals.CH4MT
		}
		if m.Overview != nil {
			c.TankCount += m.Overview.TankCount
		}
	}

	if m := t.Method3NoFlaring; m != nil {
		c.UncontrolledCount += m.Totals.UncontrolledCount
		c.UncontrolledCH4MT += m.Totals.CH4MT
	}

	// Recovered methane is not an emission but closes the mass balance.
	c.TotalCH4MT = c.FlaringCH4MT + c.RecoveredCH4MT + c.UncontrolledCH4MT

	if t.Summary != nil && t.Summary.CH4MT != nil {
		v := *t.Summary.CH4MT
		c.ReportedCH4MT = &v
	}
	return c
}
