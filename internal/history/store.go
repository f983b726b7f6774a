package history

import (
	"context"

	"gorm.io/gorm"

	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

const DefaultListLimit = 100

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Turn{}, &Report{})
}

func (s *Store) RecordTurn(ctx context.Context, turn *Turn) error {
	if turn.ID == "" {
		turn.ID = shared.NewID("turn_")
	}
	return s.db.WithContext(ctx).Create(turn).Error
}

func (s *Store) RecordReport(ctx context.Context, report *Report) error {
	if report.ID == "" {
		report.ID = shared.NewID("rpt_")
	}
	return s.db.WithContext(ctx).Create(report).Error
}

// Turns returns a session's turns oldest first.
func (s *Store) Turns(ctx context.Context, sessionID string, limit int) ([]*Turn, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var turns []*Turn
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Limit(limit).
		Find(&turns).Error
	return turns, err
}

// Reports returns a session's reports newest first.
func (s *Store) Reports(ctx context.Context, sessionID string, limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var reports []*Report
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}

func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Turn{}, "session_id = ?", sessionID).Error; err != nil {
			return err
		}
		return tx.Delete(&Report{}, "session_id = ?", sessionID).Error
	})
}
