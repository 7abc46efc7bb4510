package normalize

func aggregateReciprocating(raw RawRecord) *Compressors {
	sec := raw.section(SectionReciprocating)
	if sec == nil {
		return nil
	}
	return &Compressors{
		CO2MT:          floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT:          floatPtr(sec, "TotalCh4MetricTonsEmissions"),
		Count:          floatPtr(sec, "Count"),
		Present:        boolPtr(sec, "DoesFacilityHaveAnyReciprocatingCompressors"),
		OperatingHours: floatPtr(sec, "OperatingHours", "AnnualOperatingHours", "TotalOperatingHours"),
	}
}

func aggregateCentrifugal(raw RawRecord) *Compressors {
	sec := raw.section(SectionCentrifugal)
	if sec == nil {
		return nil
	}
	return &Compressors{
		CO2MT:          floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT:          floatPtr(sec, "TotalCh4MetricTonsEmissions"),
		Count:          floatPtr(sec, "Count"),
		Present:        boolPtr(sec, "DoesFacilityHaveAnyCentrifugalCompressors"),
		OperatingHours: floatPtr(sec, "OperatingHours", "AnnualOperatingHours", "TotalOperatingHours"),
	}
}
