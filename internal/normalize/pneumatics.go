package normalize

import "strings"

// pneumaticDeviceType normalizes a reported device-type string into one of
// the bleed categories via case-insensitive substring containment. Unmatched
// strings pass through unchanged as their own category.
func pneumaticDeviceType(s string) string {
	t := strings.ToLower(s)
	switch {
	case strings.Contains(t, "low") && strings.Contains(t, "bleed"):
		return "low-bleed"
	case strings.Contains(t, "high") && strings.Contains(t, "bleed"):
		return "high-bleed"
	case strings.Contains(t, "intermittent") && strings.Contains(t, "bleed"):
		return "intermittent-bleed"
	}
	return strings.TrimSpace(s)
}

func aggregatePneumatics(raw RawRecord) *Pneumatics {
	sec := raw.section(SectionPneumatics)
	if sec == nil {
		return nil
	}

	out := &Pneumatics{
		CO2MT: floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT: floatPtr(sec,
			"TotalCh4MetricTonsEmissions", "TotalCH4MetricTonsEmissions",
			"TotalMethaneEmissions", "TotalReportedMethaneEmissions"),
		HasHighBleed: boolPtr(sec,
			"DoesFacilityHaveHighBleedDevices", "DoesFacilityHaveHighBleedDevicesIndicator"),
		HasIntermittent: boolPtr(sec,
			"DoesFacilityHaveIntermittentBleedDevices", "DoesFacilityHaveIntermittentBleedDevicesIndicator"),
		HasLowBleed: boolPtr(sec,
			"DoesFacilityHaveLowBleedDevices", "DoesFacilityHaveLowBleedDevicesIndicator"),
		MissingDataUsed: boolPtr(sec,
			"MissingDataProceduresUsed", "MissingDataProceduresUsedIndicator"),
	}

	for _, row := range sectionRows(sec, rowsPneumaticDeviceTypes) {
		rec := DeviceTypeRow{
			Count:          floatPtr(row, "TotalCount", "TotalNumber", "TotalNumberCount", "Count"),
			CountEstimated: boolPtr(row, "IsTotalNumberEstimated", "IsTotalNumberEstimatedIndicator", "TotalNumberEstimatedIndicator"),
			CO2MT:          floatPtr(row, "TotalCarbonDioxideEmissions", "TotalCO2Emissions"),
			CH4MT:          floatPtr(row, "TotalCh4Emissions", "TotalCH4Emissions", "TotalMethaneEmissions"),
			EstimatedHours: floatPtr(row, "EstimatedNumberOfHours"),
		}
		if dtype, ok := stringOf(row, "PneumaticDeviceType", "DeviceType"); ok {
			rec.DeviceType = pneumaticDeviceType(dtype)
		}
		// Rows with no numeric content carry nothing worth keeping.
		if rec.Count != nil || rec.CO2MT != nil || rec.CH4MT != nil || rec.EstimatedHours != nil {
			out.DeviceTypes = append(out.DeviceTypes, rec)
		}
	}

	return out
}
