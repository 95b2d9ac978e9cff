// Package archive stores snapshots of fetched job lists in external
// sinks for later analysis.
package archive

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/domain"
)

// Indexer defines the interface for snapshot sinks
type Indexer interface {
	// BulkIndex upserts jobs keyed by id
	BulkIndex(ctx context.Context, jobs []domain.JobSummary) error
}

// Document is the stored form of one job
type Document struct {
	domain.JobSummary
	CapturedAt time.Time `json:"captured_at"`
}

func documents(jobs []domain.JobSummary, now time.Time) []Document {
	docs := make([]Document, len(jobs))
	for i, j := range jobs {
		docs[i] = Document{JobSummary: j, CapturedAt: now.UTC()}
	}
	return docs
}

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// validName guards names that are interpolated into statements or URLs
func validName(kind, name string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("invalid %s name %q", kind, name)
	}
	return nil
}

// Multi fans a batch out to every indexer and joins their errors
type Multi struct {
	indexers []Indexer
	logger   *zap.Logger
}

func NewMulti(logger *zap.Logger, indexers ...Indexer) *Multi {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Multi{indexers: indexers, logger: logger}
}

// Len returns the number of configured sinks
func (m *Multi) Len() int {
	return len(m.indexers)
}

func (m *Multi) BulkIndex(ctx context.Context, jobs []domain.JobSummary) error {
	var errs []error
	for _, idx := range m.indexers {
		if err := idx.BulkIndex(ctx, jobs); err != nil {
			m.logger.Warn("bulk index failed", zap.String("sink", fmt.Sprintf("%T", idx)), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		m.logger.Info("bulk indexed", zap.String("sink", fmt.Sprintf("%T", idx)), zap.Int("jobs", len(jobs)))
	}
	return errors.Join(errs...)
}
