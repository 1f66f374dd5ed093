// ABOUTME: Assessment history operations for ProfileStore.
// ABOUTME: Snapshots are keyed by UUID and looked up by full ID or prefix.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/carewise/internal/models"
	"go.uber.org/zap"
)

func (s *ProfileStore) putAssessment(ctx context.Context, a *models.Assessment) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	if err := s.kv.Put(ctx, AssessmentPrefix+a.ID.String(), data); err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

// Assessments returns saved assessments, most recent first. A limit of
// zero or less returns all of them.
func (s *ProfileStore) Assessments(ctx context.Context, limit int) ([]*models.Assessment, error) {
	keys, err := s.kv.Keys(ctx, AssessmentPrefix)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}

	assessments := make([]*models.Assessment, 0, len(keys))
	for _, key := range keys {
		data, err := s.kv.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var a models.Assessment
		if err := json.Unmarshal(data, &a); err != nil {
			s.logger.Warn("skipping unreadable assessment", zap.String("key", key), zap.Error(err))
			continue
		}
		assessments = append(assessments, &a)
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].AssessedAt.After(assessments[j].AssessedAt)
	})

	if limit > 0 && len(assessments) > limit {
		assessments = assessments[:limit]
	}
	return assessments, nil
}

// Assessment retrieves an assessment by ID or unique ID prefix.
func (s *ProfileStore) Assessment(ctx context.Context, idOrPrefix string) (*models.Assessment, error) {
	key, err := s.resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	data, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	var a models.Assessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal assessment: %w", err)
	}
	return &a, nil
}

// DeleteAssessment removes an assessment by ID or unique ID prefix.
func (s *ProfileStore) DeleteAssessment(ctx context.Context, idOrPrefix string) error {
	key, err := s.resolve(ctx, idOrPrefix)
	if err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	return nil
}

// resolve maps an ID or prefix to exactly one assessment key.
func (s *ProfileStore) resolve(ctx context.Context, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", fmt.Errorf("assessment id is required: %w", ErrNotFound)
	}

	keys, err := s.kv.Keys(ctx, AssessmentPrefix+idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("find assessment: %w", err)
	}
	switch len(keys) {
	case 0:
		return "", fmt.Errorf("assessment %s: %w", idOrPrefix, ErrNotFound)
	case 1:
		return keys[0], nil
	default:
		return "", fmt.Errorf("assessment %s matches %d records: %w", idOrPrefix, len(keys), ErrAmbiguous)
	}
}
