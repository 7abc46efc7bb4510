package normalize

func aggregateSiteDetails(raw RawRecord) *SiteDetails {
	sec := raw.section(SectionFacilitySite)
	if sec == nil {
		return nil
	}

	out := &SiteDetails{
		CogenerationUnit: boolPtr(sec, "CogenerationUnitEmissionsIndicator"),
	}
	out.PrimaryNAICS, _ = stringOf(sec, "PrimaryNAICSCode")
	out.SiteType, _ = stringOf(sec, "SiteType", "FacilitySiteType")

	if site := asMap(sec["FacilitySite"]); site != nil {
		out.FacilityName, _ = stringOf(site, "FacilitySiteName")
	}
	if addr := asMap(sec["LocationAddress"]); addr != nil {
		out.Street, _ = stringOf(addr, "LocationAddressText")
		out.City, _ = stringOf(addr, "LocalityName")
		out.ZIP, _ = stringOf(addr, "AddressPostalCode")
		out.County, _ = stringOf(addr, "CountyName", "County")
		if st := asMap(addr["StateIdentity"]); st != nil {
			out.StateCode, _ = stringOf(st, "StateCode")
		}
	}
	if pcd := asMap(sec["ParentCompanyDetails"]); pcd != nil {
		if pc := asMap(pcd["ParentCompany"]); pc != nil {
			company := &ParentCompany{}
			company.LegalName, _ = stringOf(pc, "ParentCompanyLegalName")
			company.Street, _ = stringOf(pc, "StreetAddress")
			company.City, _ = stringOf(pc, "City")
			company.State, _ = stringOf(pc, "State")
			company.ZIP, _ = stringOf(pc, "Zip")
			if *company != (ParentCompany{}) {
				out.ParentCompany = company
			}
		}
	}
	return out
}
