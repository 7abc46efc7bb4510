package normalize

// Facility aggregates a raw per-facility record into the typed FacilityRecord.
// The raw record carries its own facility identity, stamped in by whichever
// fetcher produced it.
func Facility(raw RawRecord) *FacilityRecord {
	rec := &FacilityRecord{}
	rec.FacilityID, _ = stringOf(raw, "facility_id", "FacilityId", "FacilityID")
	if y, ok := floatOf(raw, "year", "Year", "ReportingYear"); ok {
		rec.Year = int(y)
	}

	rec.Site = aggregateSiteDetails(raw)
	rec.Pneumatics = aggregatePneumatics(raw)
	rec.WellVenting = aggregateWellVenting(raw)
	rec.WellsWithFracturing = aggregateWellsWithFracturing(raw)
	rec.WellsWithoutFracturing = aggregateWellsWithoutFracturing(raw)
	rec.Completions = aggregateCompletions(raw)
	rec.ProductionWells = aggregateProductionWells(raw)
	rec.AssociatedGas = aggregateAssociatedGas(raw)
	rec.AcidGas = aggregateAcidGas(raw)
	rec.Dehydrators = aggregateDehydrators(raw)
	rec.FlareStacks = aggregateFlareStacks(raw)
	rec.Centrifugal = aggregateCentrifugal(raw)
	rec.Reciprocating = aggregateReciprocating(raw)
	rec.EquipmentLeaks = aggregateEquipmentLeaks(raw)
	rec.Tanks = aggregateTanks(raw)
	return rec
}

// Stamp writes facility identity into a raw record so Facility can recover it
// later. It returns the same map for chaining.
func Stamp(raw RawRecord, facilityID string, year int) RawRecord {
	if raw == nil {
		raw = RawRecord{}
	}
	raw["facility_id"] = facilityID
	raw["year"] = year
	return raw
}
