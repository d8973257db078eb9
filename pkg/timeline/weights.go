package timeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/numeric"
)

// DriverWeight is the contribution of one driver at one band. Score*Weight
// lengthens the phases the driver touches; Overlap (0..1) is how much the
// driver lets phases run concurrently.
type DriverWeight struct {
	Score   float64 `yaml:"score"`
	Weight  float64 `yaml:"weight"`
	Overlap float64 `yaml:"overlap"`
}

// WeightTable is the versioned driver -> band -> weight configuration
type WeightTable struct {
	Version            string                                           `yaml:"version"`
	MaxParallelization float64                                          `yaml:"max_parallelization"`
	MinimumWeeks       int                                              `yaml:"minimum_weeks"`
	ScoreDivisor       float64                                          `yaml:"score_divisor"`
	Drivers            map[models.DriverID]map[models.Band]DriverWeight `yaml:"drivers"`
}

// Lookup returns the weight for a driver band, falling back to the medium band
func (w *WeightTable) Lookup(id models.DriverID, band models.Band) (DriverWeight, bool) {
	bands, ok := w.Drivers[id]
	if !ok {
		return DriverWeight{}, false
	}
	if dw, ok := bands[band]; ok {
		return dw, true
	}
	dw, ok := bands[models.BandMedium]
	return dw, ok
}

// Validate checks ranges and that every driver has all three bands
func (w *WeightTable) Validate() error {
	if w.Version == "" {
		return fmt.Errorf("weight table version is required")
	}
	if !numeric.IsFinite(w.MaxParallelization) || w.MaxParallelization < 0 || w.MaxParallelization >= 1 {
		return fmt.Errorf("max_parallelization must be in [0, 1), got %.2f", w.MaxParallelization)
	}
	if w.MinimumWeeks < 0 {
		return fmt.Errorf("minimum_weeks must be non-negative, got %d", w.MinimumWeeks)
	}
	if !numeric.IsFinite(w.ScoreDivisor) || w.ScoreDivisor <= 0 {
		return fmt.Errorf("score_divisor must be positive, got %.2f", w.ScoreDivisor)
	}
	for _, id := range models.AllDrivers {
		bands, ok := w.Drivers[id]
		if !ok {
			return fmt.Errorf("driver %s missing from weight table", id)
		}
		for _, b := range []models.Band{models.BandLow, models.BandMedium, models.BandHigh} {
			dw, ok := bands[b]
			if !ok {
				return fmt.Errorf("driver %s missing band %s", id, b)
			}
			if !numeric.IsFinite(dw.Score) || !numeric.IsFinite(dw.Weight) || dw.Score < 0 || dw.Weight < 0 {
				return fmt.Errorf("driver %s band %s: score and weight must be finite and non-negative", id, b)
			}
			if !numeric.IsFinite(dw.Overlap) || dw.Overlap < 0 || dw.Overlap > 1 {
				return fmt.Errorf("driver %s band %s: overlap must be in [0, 1]", id, b)
			}
		}
	}
	return nil
}

// LoadWeightTable reads a YAML weight table; drivers it omits keep defaults
func LoadWeightTable(path string) (*WeightTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weight table: %w", err)
	}
	table := DefaultWeightTable()
	if err := yaml.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to parse weight table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weight table: %w", err)
	}
	return table, nil
}

func bandWeights(low, medium, high [2]float64, overlap [3]float64) map[models.Band]DriverWeight {
	return map[models.Band]DriverWeight{
		models.BandLow:    {Score: low[0], Weight: low[1], Overlap: overlap[0]},
		models.BandMedium: {Score: medium[0], Weight: medium[1], Overlap: overlap[1]},
		models.BandHigh:   {Score: high[0], Weight: high[1], Overlap: overlap[2]},
	}
}

// Overlap by band: simple work overlaps freely, complex work serialises.
// Timeline pressure inverts this since a tight date forces overlap.
var (
	standardOverlap = [3]float64{1.0, 0.6, 0.25}
	pressureOverlap = [3]float64{0.6, 0.8, 1.0}
)

// DefaultWeightTable returns the calibrated v2025.1 table
func DefaultWeightTable() *WeightTable {
	return &WeightTable{
		Version:            "2025.1",
		MaxParallelization: 0.45,
		MinimumWeeks:       4,
		ScoreDivisor:       5,
		Drivers: map[models.DriverID]map[models.Band]DriverWeight{
			models.DriverTimelinePressure:   bandWeights([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3}, pressureOverlap),
			models.DriverUserScale:          bandWeights([2]float64{1, 2}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverUseCases:           bandWeights([2]float64{1, 4}, [2]float64{2, 4}, [2]float64{3, 4}, standardOverlap),
			models.DriverCloudPlatform:      bandWeights([2]float64{2, 1}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverLandingZone:        bandWeights([2]float64{2, 1}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverOSVersion:          bandWeights([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverChangeControl:      bandWeights([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverSecurityReview:     bandWeights([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverAppCount:           bandWeights([2]float64{1, 2}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverAppDeployment:      bandWeights([2]float64{1, 2}, [2]float64{2, 2}, [2]float64{3, 10}, standardOverlap),
			models.DriverBackendSensitivity: bandWeights([2]float64{1, 0}, [2]float64{2, 1}, [2]float64{3, 3}, standardOverlap),
			models.DriverPeripherals:        bandWeights([2]float64{1, 0}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverLOBTesting:         bandWeights([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
			models.DriverModernizationAge:   bandWeights([2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3}, standardOverlap),
		},
	}
}
