package normalize

// FacilityRecord is the combined, typed record for one facility-year. A nil
// section pointer means the facility reported nothing for that subsystem.
type FacilityRecord struct {
	FacilityID string
	Year       int

	Site                   *SiteDetails
	Pneumatics             *Pneumatics
	WellVenting            *WellVenting
	WellsWithFracturing    *WellsEmissions
	WellsWithoutFracturing *WellsEmissions
	Completions            *Completions
	ProductionWells        *ProductionWells
	AssociatedGas          *AssociatedGas
	AcidGas                *AcidGasRemoval
	Dehydrators            *Dehydrators
	FlareStacks            *FlareStacks
	Centrifugal            *Compressors
	Reciprocating          *Compressors
	EquipmentLeaks         *EquipmentLeaks
	Tanks                  *Tanks
}

// SiteDetails carries facility identity and location metadata.
type SiteDetails struct {
	FacilityName     string
	Street           string
	City             string
	StateCode        string
	County           string
	ZIP              string
	SiteType         string
	PrimaryNAICS     string
	CogenerationUnit *bool
	ParentCompany    *ParentCompany
}

type ParentCompany struct {
	LegalName string
	Street    string
	City      string
	State     string
	ZIP       string
}

// Pneumatics aggregates the pneumatic device venting section.
type Pneumatics struct {
	CO2MT           *float64
	CH4MT           *float64
	HasHighBleed    *bool
	HasIntermittent *bool
	HasLowBleed     *bool
	MissingDataUsed *bool
	DeviceTypes     []DeviceTypeRow
}

// DeviceTypeRow is one normalized device-type row. DeviceType is one of the
// normalized bleed categories or the source string passed through unchanged.
type DeviceTypeRow struct {
	DeviceType     string
	Count          *float64
	CountEstimated *bool
	CO2MT          *float64
	CH4MT          *float64
	EstimatedHours *float64
}

type WellVenting struct {
	CO2MT               *float64
	CH4MT               *float64
	HasLiquidsUnloading *bool
	Method1Used         *bool
	Method2Used         *bool
	Method3Used         *bool
}

// WellsEmissions covers both the with- and without-fracturing summaries.
type WellsEmissions struct {
	CO2MT           *float64
	CH4MT           *float64
	N2OMT           *float64
	HasCompletions  *bool
	MissingDataUsed *bool
}

// Completions aggregates hydraulically fractured completion/workover rows by
// sub-basin plus facility totals.
type Completions struct {
	BySubBasin []CompletionsBucket
	Totals     CompletionsTotals
}

type CompletionsBucket struct {
	SubBasinID          string
	TotalCompletions    float64
	ReducedEmissions    float64
	NonReducedEmissions float64
	CH4MT               float64
	CO2MT               float64
	N2OMT               float64
	GasSCF              float64
	EquationsUsed       []string
	WellTypes           []string
	OilOrGas            []string
	AnyGasFlared        bool
}

type CompletionsTotals struct {
	ReducedEmissions    float64
	NonReducedEmissions float64
	CH4MT               float64
	CO2MT               float64
	N2OMT               float64
	GasSCF              float64
	EquationsUsed       []string
}

// ProductionWells aggregates onshore production well counts by sub-basin and
// by formation type.
type ProductionWells struct {
	Totals      ProductionWellTotals
	BySubBasin  []ProductionWellBucket
	ByFormation []FormationBucket
}

type ProductionWellTotals struct {
	ProducingEOY float64
	Acquired     float64
	Divested     float64
	Completed    float64
	Removed      float64
}

type ProductionWellBucket struct {
	SubBasinID    string
	County        string
	FormationType string
	ProducingEOY  float64
	Acquired      float64
	Divested      float64
	Completed     float64
	Removed       float64
}

type FormationBucket struct {
	FormationType string
	WellCount     float64
}

type AssociatedGas struct {
	CO2MT   *float64
	CH4MT   *float64
	Present *bool
}

type AcidGasRemoval struct {
	CO2MT *float64
	CH4MT *float64
	N2OMT *float64
}

type Dehydrators struct {
	SmallGlycol *DehydratorGroup
	Desiccant   *DehydratorGroup
}

type DehydratorGroup struct {
	CO2MT *float64
	CH4MT *float64
	Count *float64
}

// FlareStacks summarizes the unique flare stack rows facility-wide.
type FlareStacks struct {
	NumStacks               int
	WithFlowMonitor         int
	WithGasAnalyzer         int
	WithMonitorOrAnalyzer   int
	AvgGasToFlare           *float64
	AvgCombustionEfficiency *float64
	AvgCH4MoleFraction      *float64
	AvgCH4PerStack          *float64
	TotalCH4MT              *float64
}

// Compressors covers the reciprocating and centrifugal summaries.
type Compressors struct {
	CO2MT          *float64
	CH4MT          *float64
	Count          *float64
	Present        *bool
	OperatingHours *float64
}

type EquipmentLeaks struct {
	CO2MT               *float64
	CH4MT               *float64
	ViaSurveys          *bool
	ViaPopulationCounts *bool
	TotalLeaksFound     *float64
	MissingDataUsed     *bool
	ElectedSubpartQ     *bool
	DetectionMethods    DetectionMethods
	Components          []LeakComponent
}

type DetectionMethods struct {
	OpticalGasImaging        *bool
	Method21                 *bool
	InfraredLaser            *bool
	Acoustic                 *bool
	OpticalGasImaging605397A *bool
	Method21605397A          *bool
}

// LeakComponent is one leaking component type with nonzero methane.
type LeakComponent struct {
	ComponentType   string
	LeakingCount    *float64
	AvgHoursLeaking *float64
	CH4MT           float64
	CO2MT           *float64
}

// Tanks groups the atmospheric tank summary, the three calculation method
// aggregates, and the reconciled combined totals.
type Tanks struct {
	Summary          *TankSummary
	Method12         *TankMethod12
	Method3Flaring   *TankMethod3Flaring
	Method3NoFlaring *TankMethod3NoFlaring
	Combined         TankCombined
}

type TankSummary struct {
	CO2MT                    *float64
	CH4MT                    *float64
	N2OMT                    *float64
	Method1Used              *bool
	Method2Used              *bool
	Method3Used              *bool
	MalfunctioningDumpValves *bool
	MissingDataUsed          *bool
}

type TankMethod12 struct {
	BySubBasin []TankMethod12Bucket
	Totals     TankMethod12Totals
}

type TankMethod12Bucket struct {
	SubBasinID         string
	Methodologies      []string
	Software           []string
	WellheadSeparators float64
	AvgSeparatorTempF  *float64
	AvgSeparatorPSIG   *float64
	AvgAPIGravity      *float64
	VRUControlCount    float64
	FlareControlCount  float64
	MinFlashCH4        *float64
	MaxFlashCH4        *float64
	MinFlashCO2        *float64
	MaxFlashCO2        *float64
	FlaringCO2MT       float64
	FlaringCH4MT       float64
	FlaringN2OMT       float64
	OilVolumeBBL       float64
	CO2RecoveredMT     float64
	CH4RecoveredMT     float64
	VaporRecoveryCO2MT float64
	VaporRecoveryCH4MT float64
	TankCount          float64
	NotOnWellPadTanks  float64
	AnyVRU             bool
	AnyAtmosphere      bool
	AnyFlares          bool
	AnyTwoYearDelay    bool
}

type TankMethod12Totals struct {
	WellheadSeparators float64
	VRUControlCount    float64
	FlareControlCount  float64
	TankCount          float64
	NotOnWellPadTanks  float64
	FlaringCO2MT       float64
	FlaringCH4MT       float64
	FlaringN2OMT       float64
	CO2RecoveredMT     float64
	CH4RecoveredMT     float64
	VaporRecoveryCO2MT float64
	VaporRecoveryCH4MT float64
	OilVolumeBBL       float64
	AnyVRU             bool
	AnyAtmosphere      bool
	AnyFlares          bool
	AnyTwoYearDelay    bool
	Methodologies      []string
	Software           []string
	MinFlashCH4        *float64
	MaxFlashCH4        *float64
	MinFlashCO2        *float64
	MaxFlashCO2        *float64
}

type TankMethod3Flaring struct {
	BySubBasin []TankFlareBucket
	Totals     *TankFlareTotals
	Overview   *TankMethod3Overview
}

type TankFlareBucket struct {
	SubBasinID        string
	FlareControlCount float64
	CO2MT             float64
	CH4MT             float64
	N2OMT             float64
}

type TankFlareTotals struct {
	FlareControlCount float64
	CO2MT             float64
	CH4MT             float64
	N2OMT             float64
}

type TankMethod3Overview struct {
	FractionOilWithFlaring *float64
	FractionOilWithVapor   *float64
	TankCount              float64
	GasWellsCount          float64
	WellsWithoutGasCount   float64
	OilThroughputBBL       float64
	AnyTwoYearDelay        bool
}

type TankMethod3NoFlaring struct {
	BySubBasin []TankUncontrolledBucket
	Totals     TankUncontrolledTotals
}

type TankUncontrolledBucket struct {
	SubBasinID        string
	UncontrolledCount float64
	CO2MT             float64
	CH4MT             float64
}

type TankUncontrolledTotals struct {
	UncontrolledCount float64
	CO2MT             float64
	CH4MT             float64
}

// TankCombined reconciles the three calculation methods into one totals
// record. ReportedCH4MT, when present, is the facility's own top-level figure
// and takes precedence over TotalCH4MT for display and compliance purposes;
// TotalCH4MT stays reproducible from the method-level components.
type TankCombined struct {
	TankCount         float64
	TotalCH4MT        float64
	FlaringCH4MT      float64
	RecoveredCH4MT    float64
	UncontrolledCH4MT float64
	VRUControlCount   float64
	FlareControlCount float64
	UncontrolledCount float64
	ReportedCH4MT     *float64
}
