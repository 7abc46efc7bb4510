package normalize

import "sort"

func aggregateEquipmentLeaks(raw RawRecord) *EquipmentLeaks {
	sec := raw.section(SectionEquipmentLeaks)
	if sec == nil {
		return nil
	}

	out := &EquipmentLeaks{
		CO2MT:               floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT:               floatPtr(sec, "TotalCh4MetricTonsEmissions"),
		ViaSurveys:          boolPtr(sec, "EquipmentLeaksViaSurveys"),
		ViaPopulationCounts: boolPtr(sec, "EquipmentLeaksViaPopulationCounts"),
		TotalLeaksFound:     floatPtr(sec, "TotalEquipmentLeaksDuringYear"),
		MissingDataUsed:     boolPtr(sec, "MissingDataProceduresUsed"),
		ElectedSubpartQ:     boolPtr(sec, "DidFacilityElectToComplyWith98236Q"),
		DetectionMethods: DetectionMethods{
			OpticalGasImaging:        boolPtr(sec, "OpticalGasImagingInstrument6018"),
			Method21:                 boolPtr(sec, "Method21"),
			InfraredLaser:            boolPtr(sec, "InfraredLaserBeamIlluminatedInstrument"),
			Acoustic:                 boolPtr(sec, "AcousticLeakDetectionDevice"),
			OpticalGasImaging605397A: boolPtr(sec, "OpticalGasImagingInstrument605397A"),
			Method21605397A:          boolPtr(sec, "Method21605397A"),
		},
	}

	for _, row := range sectionRows(sec, rowsLeakComponents) {
		ch4, ok := floatOf(row, "Ch4Emissions")
		if !ok || ch4 <= 0 {
			continue
		}
		comp := LeakComponent{
			CH4MT:           ch4,
			LeakingCount:    floatPtr(row, "TotalLeakingComponentTypes"),
			AvgHoursLeaking: floatPtr(row, "AverageTimeComponentsSurveyed"),
			CO2MT:           floatPtr(row, "Co2Emissions"),
		}
		comp.ComponentType, _ = stringOf(row, "ComponentType")
		out.Components = append(out.Components, comp)
	}

	// Largest emitters first; stable so equal components keep row order.
	sort.SliceStable(out.Components, func(i, j int) bool {
		return out.Components[i].CH4MT > out.Components[j].CH4MT
	})
	return out
}
