package storage

import (
	"context"
	"errors"

	"github.com/opscart/avd-business-case/pkg/models"
)

// ErrNotFound is returned when a run id does not exist
var ErrNotFound = errors.New("report run not found")

// Store persists the archive of generated business cases
type Store interface {
	SaveRun(ctx context.Context, run *models.ReportRun) error
	GetRun(ctx context.Context, id string) (*models.ReportRun, error)
	ListRuns(ctx context.Context, company string, limit int) ([]*models.ReportRun, error)
	GetRunStats(ctx context.Context, company string, days int) (*models.RunStats, error)

	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	Type    string
	URL     string
	Timeout int
}
