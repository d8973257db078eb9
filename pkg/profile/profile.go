package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opscart/avd-business-case/pkg/models"
)

// DateLayout is the calendar date format used in profile files
const DateLayout = "2006-01-02"

// document is the on-disk shape of a customer profile
type document struct {
	CompanyName   string `yaml:"company_name" json:"company_name"`
	Industry      string `yaml:"industry" json:"industry"`
	TotalUsers    int    `yaml:"total_users" json:"total_users"`
	LocationCount int    `yaml:"location_count" json:"location_count"`
	UseCaseCount  int    `yaml:"use_case_count" json:"use_case_count"`
	AppCount      int    `yaml:"app_count" json:"app_count"`

	PlannedStartDate string `yaml:"planned_start_date" json:"planned_start_date"`
	TargetGoLiveDate string `yaml:"target_go_live_date" json:"target_go_live_date"`

	Drivers map[string]string `yaml:"drivers" json:"drivers"`

	Current struct {
		Platform    string   `yaml:"platform" json:"platform"`
		ServerCount *int     `yaml:"server_count" json:"server_count"`
		AnnualCost  *float64 `yaml:"annual_cost" json:"annual_cost"`
	} `yaml:"current" json:"current"`

	Future struct {
		UserProfile      string   `yaml:"user_profile" json:"user_profile"`
		VMSKU            string   `yaml:"vm_sku" json:"vm_sku"`
		StorageType      string   `yaml:"storage_type" json:"storage_type"`
		StoragePerUserGB *float64 `yaml:"storage_per_user_gb" json:"storage_per_user_gb"`
		IncludeManager   *bool    `yaml:"include_manager" json:"include_manager"`
	} `yaml:"future" json:"future"`

	ImplementationCost *float64 `yaml:"implementation_cost" json:"implementation_cost"`
}

// Load reads a profile file; .json is decoded as JSON, anything else as YAML
func Load(path string) (*models.CustomerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes profile bytes. Unknown keys are rejected so typos surface.
func Parse(data []byte, isJSON bool) (*models.CustomerProfile, error) {
	var doc document
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
		}
	}
	return doc.toProfile()
}

func (d *document) toProfile() (*models.CustomerProfile, error) {
	p := &models.CustomerProfile{
		CompanyName:        strings.TrimSpace(d.CompanyName),
		Industry:           strings.TrimSpace(d.Industry),
		TotalUsers:         d.TotalUsers,
		LocationCount:      d.LocationCount,
		UseCaseCount:       d.UseCaseCount,
		AppCount:           d.AppCount,
		CurrentPlatform:    strings.TrimSpace(d.Current.Platform),
		CurrentServerCount: d.Current.ServerCount,
		CurrentAnnualCost:  d.Current.AnnualCost,
		UserProfile:        models.UserProfile(strings.ToLower(strings.TrimSpace(d.Future.UserProfile))),
		VMSKU:              strings.TrimSpace(d.Future.VMSKU),
		StorageType:        strings.ToLower(strings.TrimSpace(d.Future.StorageType)),
		StoragePerUserGB:   d.Future.StoragePerUserGB,
		IncludeManager:     d.Future.IncludeManager,
		ImplementationCost: d.ImplementationCost,
	}

	var err error
	if p.PlannedStartDate, err = parseDate("planned_start_date", d.PlannedStartDate); err != nil {
		return nil, err
	}
	if p.TargetGoLiveDate, err = parseDate("target_go_live_date", d.TargetGoLiveDate); err != nil {
		return nil, err
	}

	if len(d.Drivers) > 0 {
		p.Drivers = make(map[models.DriverID]models.Band, len(d.Drivers))
		for key, value := range d.Drivers {
			id := models.DriverID(strings.ToUpper(strings.TrimSpace(key)))
			if !id.Valid() {
				return nil, fmt.Errorf("unknown driver %q", key)
			}
			band, err := models.ParseBand(value)
			if err != nil {
				return nil, fmt.Errorf("driver %s: %w", id, err)
			}
			p.Drivers[id] = band
		}
	}
	return p, nil
}

func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", field, value)
	}
	return &t, nil
}

// Discover lists the profile files in dir in name order
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
