// ABOUTME: ProfileStore keeps the current profile and its history in any KV.
// ABOUTME: Every save validates the profile and appends an assessment snapshot.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harperreed/carewise/internal/assess"
	"github.com/harperreed/carewise/internal/models"
	"go.uber.org/zap"
)

const (
	ProfileKey       = "profile:current"
	AssessmentPrefix = "assessment:"
)

// ProfileStore implements Repository over a KV backend.
type ProfileStore struct {
	kv     KV
	logger *zap.Logger
}

// NewProfileStore wraps kv. A nil logger discards log output.
func NewProfileStore(kv KV, logger *zap.Logger) *ProfileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileStore{kv: kv, logger: logger}
}

// KV returns the underlying backend.
func (s *ProfileStore) KV() KV {
	return s.kv
}

// Profile returns the saved profile, or nil when none has been saved.
func (s *ProfileStore) Profile(ctx context.Context) (*models.HealthProfile, error) {
	data, err := s.kv.Get(ctx, ProfileKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p models.HealthProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

// SaveProfile validates p, stores it as the current profile, and records
// an assessment snapshot of the evaluation at this moment.
func (s *ProfileStore) SaveProfile(ctx context.Context, p *models.HealthProfile) (*models.Assessment, error) {
	if err := models.Validate(p); err != nil {
		return nil, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.kv.Put(ctx, ProfileKey, data); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	a := newAssessment(p)
	if err := s.putAssessment(ctx, a); err != nil {
		return nil, err
	}

	if unknown := p.UnknownTags(); len(unknown) > 0 {
		s.logger.Info("profile has tags outside the known vocabulary", zap.Strings("tags", unknown))
	}
	s.logger.Debug("profile saved",
		zap.String("assessment", a.ID.String()),
		zap.String("category", a.Category.String()),
		zap.Int("findings", len(a.Findings)))

	return a, nil
}

// ClearProfile removes the current profile. The history is kept.
func (s *ProfileStore) ClearProfile(ctx context.Context) error {
	if err := s.kv.Delete(ctx, ProfileKey); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

// Ping checks the backend.
func (s *ProfileStore) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// Close closes the backend.
func (s *ProfileStore) Close() error {
	return s.kv.Close()
}

// newAssessment evaluates p and captures the result.
func newAssessment(p *models.HealthProfile) *models.Assessment {
	a := models.NewAssessment(p)
	if bmi, ok := assess.CalculateBMI(p); ok {
		a.BMI = &bmi
	}
	a.Category = assess.BMICategory(p)
	a.Findings = assess.HealthRisks(p)
	return a
}
