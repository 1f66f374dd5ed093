// ABOUTME: Repository interface for health profile storage.
// ABOUTME: Defines the contract for the profile and its assessment history.
package storage

import (
	"context"

	"github.com/harperreed/carewise/internal/models"
)

// Repository defines the storage interface for profile data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Profile operations
	Profile(ctx context.Context) (*models.HealthProfile, error)
	SaveProfile(ctx context.Context, p *models.HealthProfile) (*models.Assessment, error)
	ClearProfile(ctx context.Context) error

	// Assessment history
	Assessments(ctx context.Context, limit int) ([]*models.Assessment, error)
	Assessment(ctx context.Context, idOrPrefix string) (*models.Assessment, error)
	DeleteAssessment(ctx context.Context, idOrPrefix string) error

	// Export/Import
	Export(ctx context.Context) (*ExportData, error)
	Import(ctx context.Context, data *ExportData) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
