package models

import (
	"fmt"
	"strings"
	"time"
)

// DriverID identifies one of the fourteen complexity drivers
type DriverID string

const (
	DriverTimelinePressure   DriverID = "D5"
	DriverUserScale          DriverID = "D6"
	DriverUseCases           DriverID = "D7"
	DriverCloudPlatform      DriverID = "D14"
	DriverLandingZone        DriverID = "D15"
	DriverOSVersion          DriverID = "D16"
	DriverChangeControl      DriverID = "D19"
	DriverSecurityReview     DriverID = "D22"
	DriverAppCount           DriverID = "D25"
	DriverAppDeployment      DriverID = "D26"
	DriverBackendSensitivity DriverID = "D27"
	DriverPeripherals        DriverID = "D28"
	DriverLOBTesting         DriverID = "D29"
	DriverModernizationAge   DriverID = "D30"
)

// AllDrivers lists the drivers in report order
var AllDrivers = []DriverID{
	DriverTimelinePressure,
	DriverUserScale,
	DriverUseCases,
	DriverCloudPlatform,
	DriverLandingZone,
	DriverOSVersion,
	DriverChangeControl,
	DriverSecurityReview,
	DriverAppCount,
	DriverAppDeployment,
	DriverBackendSensitivity,
	DriverPeripherals,
	DriverLOBTesting,
	DriverModernizationAge,
}

var driverLabels = map[DriverID]string{
	DriverTimelinePressure:   "Timeline Pressure",
	DriverUserScale:          "User Scale",
	DriverUseCases:           "Use Cases",
	DriverCloudPlatform:      "Cloud Platform",
	DriverLandingZone:        "Landing Zone",
	DriverOSVersion:          "OS Version",
	DriverChangeControl:      "Change Control",
	DriverSecurityReview:     "Security Review",
	DriverAppCount:           "App Count",
	DriverAppDeployment:      "App Deployment",
	DriverBackendSensitivity: "Backend Sensitivity",
	DriverPeripherals:        "Peripherals",
	DriverLOBTesting:         "LOB Testing",
	DriverModernizationAge:   "Modernization Age",
}

// Label returns the human-readable driver name, e.g. "Change Control (D19)"
func (d DriverID) Label() string {
	if name, ok := driverLabels[d]; ok {
		return fmt.Sprintf("%s (%s)", name, d)
	}
	return string(d)
}

// Valid reports whether d is one of the fourteen known drivers
func (d DriverID) Valid() bool {
	_, ok := driverLabels[d]
	return ok
}

// Band is the ordinal complexity band of a driver
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// ParseBand accepts low/medium/high and the domain equivalents simple/moderate/complex
func ParseBand(s string) (Band, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "simple":
		return BandLow, nil
	case "medium", "moderate", "mid":
		return BandMedium, nil
	case "high", "complex":
		return BandHigh, nil
	default:
		return "", fmt.Errorf("unknown complexity band %q", s)
	}
}

// UnmarshalText lets bands decode from YAML and JSON profile files
func (b *Band) UnmarshalText(text []byte) error {
	parsed, err := ParseBand(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Upper returns the band in upper case for report tables
func (b Band) Upper() string {
	return strings.ToUpper(string(b))
}

// UserProfile is the workload class used to size session hosts
type UserProfile string

const (
	UserProfileLight  UserProfile = "light"
	UserProfileMedium UserProfile = "medium"
	UserProfilePower  UserProfile = "power"
)

// CustomerProfile is the immutable input to the engine. Only TotalUsers is
// required; everything else may be absent while a profile is being edited.
type CustomerProfile struct {
	CompanyName   string
	Industry      string
	TotalUsers    int
	LocationCount int
	UseCaseCount  int
	AppCount      int

	PlannedStartDate *time.Time
	TargetGoLiveDate *time.Time

	// Explicit driver answers; missing ones are derived or defaulted
	Drivers map[DriverID]Band

	// Current state
	CurrentPlatform    string
	CurrentServerCount *int
	CurrentAnnualCost  *float64

	// Future state
	UserProfile      UserProfile
	VMSKU            string
	StorageType      string
	StoragePerUserGB *float64
	IncludeManager   *bool

	// Investment
	ImplementationCost *float64
}

// Driver returns the explicit band for id, if one was given
func (p *CustomerProfile) Driver(id DriverID) (Band, bool) {
	if p == nil || p.Drivers == nil {
		return "", false
	}
	b, ok := p.Drivers[id]
	return b, ok && b != ""
}
