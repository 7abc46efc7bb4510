package normalize

func aggregateAssociatedGas(raw RawRecord) *AssociatedGas {
	sec := raw.section(SectionAssociatedGas)
	if sec == nil {
		return nil
	}
	return &AssociatedGas{
		CO2MT:   floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT:   floatPtr(sec, "TotalCh4MetricTonsEmissions"),
		Present: boolPtr(sec, "DidFacilityHaveGasVenting"),
	}
}

func aggregateAcidGas(raw RawRecord) *AcidGasRemoval {
	sec := raw.section(SectionAcidGasRemoval)
	if sec == nil {
		return nil
	}
	return &AcidGasRemoval{
		CO2MT: floatPtr(sec, "TotalCarbonDioxideEmissions"),
		CH4MT: floatPtr(sec, "TotalCh4MetricTonsEmissions"),
		N2OMT: floatPtr(sec, "TotalNitrousOxideEmissions"),
	}
}

func aggregateDehydrators(raw RawRecord) *Dehydrators {
	sec := raw.section(SectionDehydrators)
	if sec == nil {
		return nil
	}

	out := &Dehydrators{}
	if sub := asMap(sec["SmallGlycolDehydrators"]); sub != nil {
		out.SmallGlycol = dehydratorGroup(sub)
	}
	// Both spellings occur in the source reports.
	if sub := asMap(sec["DessicantDehydrators"]); sub != nil {
		out.Desiccant = dehydratorGroup(sub)
	} else if sub := asMap(sec["DesiccantDehydrators"]); sub != nil {
		out.Desiccant = dehydratorGroup(sub)
	}
	if out.SmallGlycol == nil && out.Desiccant == nil {
		return nil
	}
	return out
}

func dehydratorGroup(sub map[string]any) *DehydratorGroup {
	return &DehydratorGroup{
		CO2MT: floatPtr(sub, "TotalCarbonDioxideEmissions"),
		CH4MT: floatPtr(sub, "TotalCh4MetricTonsEmissions"),
		Count: floatPtr(sub, "TotalNumber", "Count"),
	}
}
