package drivers

import (
	"math"
	"time"

	"github.com/opscart/avd-business-case/pkg/models"
)

// defaultBands are assumed for drivers the profile neither answers nor implies
var defaultBands = map[models.DriverID]models.Band{
	models.DriverTimelinePressure:   models.BandMedium,
	models.DriverUserScale:          models.BandMedium,
	models.DriverUseCases:           models.BandLow,
	models.DriverCloudPlatform:      models.BandLow,
	models.DriverLandingZone:        models.BandMedium,
	models.DriverOSVersion:          models.BandLow,
	models.DriverChangeControl:      models.BandMedium,
	models.DriverSecurityReview:     models.BandMedium,
	models.DriverAppCount:           models.BandMedium,
	models.DriverAppDeployment:      models.BandMedium,
	models.DriverBackendSensitivity: models.BandMedium,
	models.DriverPeripherals:        models.BandLow,
	models.DriverLOBTesting:         models.BandMedium,
	models.DriverModernizationAge:   models.BandMedium,
}

// Resolution is the band of every driver plus how it was obtained
type Resolution struct {
	Bands     map[models.DriverID]models.Band
	Defaulted map[models.DriverID]bool
	// WeeksToGoLive is nil when the profile has no go-live date
	WeeksToGoLive *int
}

// Band returns the resolved band for id, medium if unresolved
func (r Resolution) Band(id models.DriverID) models.Band {
	if b, ok := r.Bands[id]; ok {
		return b
	}
	return models.BandMedium
}

// Resolve bands all fourteen drivers. Explicit answers win; D5, D6, D7 and
// D25 are derived from dates and counts; anything else falls back to the
// standard default and is marked as defaulted.
func Resolve(p *models.CustomerProfile, asOf time.Time) Resolution {
	res := Resolution{
		Bands:     make(map[models.DriverID]models.Band, len(models.AllDrivers)),
		Defaulted: make(map[models.DriverID]bool, len(models.AllDrivers)),
	}
	if p == nil {
		for _, id := range models.AllDrivers {
			res.Bands[id] = defaultBands[id]
			res.Defaulted[id] = true
		}
		return res
	}

	res.WeeksToGoLive = WeeksToGoLive(p, asOf)

	for _, id := range models.AllDrivers {
		if b, ok := p.Driver(id); ok {
			res.Bands[id] = b
			continue
		}
		b, derived := derive(id, p, res.WeeksToGoLive)
		if !derived {
			b = defaultBands[id]
			res.Defaulted[id] = true
		}
		res.Bands[id] = b
	}
	return res
}

func derive(id models.DriverID, p *models.CustomerProfile, weeks *int) (models.Band, bool) {
	switch id {
	case models.DriverTimelinePressure:
		if weeks == nil {
			return "", false
		}
		return TimelinePressureBand(*weeks), true
	case models.DriverUserScale:
		if p.TotalUsers <= 0 {
			return "", false
		}
		return UserScaleBand(p.TotalUsers), true
	case models.DriverUseCases:
		if p.UseCaseCount <= 0 {
			return "", false
		}
		return UseCaseBand(p.UseCaseCount), true
	case models.DriverAppCount:
		if p.AppCount <= 0 {
			return "", false
		}
		return AppCountBand(p.AppCount), true
	}
	return "", false
}

// WeeksToGoLive counts whole weeks from the planned start (or asOf when no
// start is planned) to the target go-live; nil without a go-live date.
func WeeksToGoLive(p *models.CustomerProfile, asOf time.Time) *int {
	if p == nil || p.TargetGoLiveDate == nil {
		return nil
	}
	start := asOf
	if p.PlannedStartDate != nil {
		start = *p.PlannedStartDate
	}
	weeks := int(math.Round(p.TargetGoLiveDate.Sub(start).Hours() / (24 * 7)))
	return &weeks
}

// TimelinePressureBand: more than a year is relaxed, under twelve weeks is tight
func TimelinePressureBand(weeks int) models.Band {
	switch {
	case weeks > 52:
		return models.BandLow
	case weeks >= 12:
		return models.BandMedium
	default:
		return models.BandHigh
	}
}

func UserScaleBand(users int) models.Band {
	switch {
	case users < 1000:
		return models.BandLow
	case users <= 5000:
		return models.BandMedium
	default:
		return models.BandHigh
	}
}

func UseCaseBand(useCases int) models.Band {
	switch {
	case useCases <= 5:
		return models.BandLow
	case useCases <= 10:
		return models.BandMedium
	default:
		return models.BandHigh
	}
}

func AppCountBand(apps int) models.Band {
	switch {
	case apps < 100:
		return models.BandLow
	case apps <= 300:
		return models.BandMedium
	default:
		return models.BandHigh
	}
}
