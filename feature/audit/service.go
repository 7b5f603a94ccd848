package audit

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs consistency audits.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new audit service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Run executes all audit checks.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	report, err := RunChecks(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if !report.Passed {
		s.logger.Warn("Audit found inconsistencies",
			zap.Int("placement_violations", len(report.PlacementViolations)),
			zap.Int("dangling_references", len(report.DanglingReferences)),
			zap.Int("stat_mismatches", len(report.StatMismatches)),
			zap.Int("negative_balances", len(report.NegativeBalances)),
			zap.Int("schema_errors", len(report.SchemaErrors)),
		)
	}
	return report, nil
}
