// ABOUTME: Data migration between storage backends.
// ABOUTME: Copies every key from a source KV to a destination KV.

package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// MigrateSummary holds counts of migrated entries.
type MigrateSummary struct {
	Keys        int
	Profiles    int
	Assessments int
	Skipped     int
}

// Copy copies all keys from src to dst. Keys already present in dst are
// overwritten. With dryRun set, nothing is written and the summary reports
// what would have been copied.
func Copy(ctx context.Context, dst, src KV, dryRun bool) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	keys, err := src.Keys(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list source keys: %w", err)
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, "profile:") && !strings.HasPrefix(key, AssessmentPrefix) {
			summary.Skipped++
			continue
		}

		if !dryRun {
			value, err := src.Get(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", key, err)
			}
			if err := dst.Put(ctx, key, value); err != nil {
				return nil, fmt.Errorf("write %s: %w", key, err)
			}
		}

		summary.Keys++
		if strings.HasPrefix(key, AssessmentPrefix) {
			summary.Assessments++
		} else {
			summary.Profiles++
		}
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
