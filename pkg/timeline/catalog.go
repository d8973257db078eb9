package timeline

import "github.com/opscart/avd-business-case/pkg/models"

// PhaseSpec is one entry of the implementation phase catalog
type PhaseSpec struct {
	Key       string
	Label     string
	BaseWeeks float64
	MinWeeks  int
	Drivers   []models.DriverID
}

// DefaultCatalog returns the six standard AVD implementation phases in order
func DefaultCatalog() []PhaseSpec {
	return []PhaseSpec{
		{
			Key:   "prepare-transform",
			Label: "Prepare & Transform Applications",
			Drivers: []models.DriverID{
				models.DriverModernizationAge, models.DriverBackendSensitivity, models.DriverAppDeployment,
				models.DriverAppCount, models.DriverUseCases, models.DriverLOBTesting,
			},
		},
		{
			Key:   "prepare-azure",
			Label: "Prepare Azure Environment",
			Drivers: []models.DriverID{
				models.DriverChangeControl, models.DriverLandingZone, models.DriverCloudPlatform,
			},
		},
		{
			Key:      "deploy-nerdio",
			Label:    "Deploy Nerdio Manager",
			MinWeeks: 1,
			Drivers: []models.DriverID{
				models.DriverChangeControl, models.DriverSecurityReview,
			},
		},
		{
			Key:   "design-build",
			Label: "Design, Build & Configure AVD",
			Drivers: []models.DriverID{
				models.DriverPeripherals, models.DriverBackendSensitivity, models.DriverAppDeployment,
				models.DriverAppCount, models.DriverUseCases, models.DriverOSVersion,
			},
		},
		{
			Key:   "pilot",
			Label: "Pilot User Group Testing",
			Drivers: []models.DriverID{
				models.DriverLOBTesting, models.DriverPeripherals, models.DriverBackendSensitivity,
				models.DriverAppCount, models.DriverChangeControl, models.DriverUseCases,
			},
		},
		{
			Key:   "migration",
			Label: "User & Use Case Migration",
			Drivers: []models.DriverID{
				models.DriverChangeControl, models.DriverUserScale, models.DriverUseCases, models.DriverAppCount,
			},
		},
	}
}
