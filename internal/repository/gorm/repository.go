package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradingdesk/internal/models"
	"tradingdesk/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- System config -----------------------------------------------------------

func (s *Store) GetSystemConfig(ctx context.Context) (*models.SystemConfig, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.SystemConfig
	err := s.db.WithContext(ctx).Order("id desc").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) SaveSystemConfig(ctx context.Context, item *models.SystemConfig) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

// --- Portfolio ---------------------------------------------------------------

func (s *Store) GetPortfolio(ctx context.Context) (*models.Portfolio, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	return s.GetPortfolioTx(s.db.WithContext(ctx))
}

func (s *Store) GetPortfolioTx(tx *gorm.DB) (*models.Portfolio, error) {
	if tx == nil {
		return nil, nil
	}
	var item models.Portfolio
	err := tx.Order("id desc").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreatePortfolio(ctx context.Context, item *models.Portfolio) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) SavePortfolio(ctx context.Context, item *models.Portfolio) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) SavePortfolioTx(tx *gorm.DB, item *models.Portfolio) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.Save(item).Error
}

// --- Operations --------------------------------------------------------------

func (s *Store) InsertOperationTx(tx *gorm.DB, item *models.Operation) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.Create(item).Error
}

func (s *Store) GetOperationByID(ctx context.Context, id uint64) (*models.Operation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Operation
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListOperations(ctx context.Context, params repository.ListOperationsParams) ([]models.Operation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Operation{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	query = applyOrder(query, params.SortBy, params.SortDir, "entry_date")
	if params.Limit > 0 {
		query = query.Limit(normalizeLimit(params.Limit, 200))
	}
	var items []models.Operation
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateOperationTx(tx *gorm.DB, id uint64, updates map[string]any) error {
	if tx == nil || len(updates) == 0 {
		return nil
	}
	return tx.Model(&models.Operation{}).Where("id = ?", id).Updates(updates).Error
}

func (s *Store) ListClosedOperationsBetween(ctx context.Context, strategy string, since, until time.Time) ([]models.Operation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.Operation{}).
		Where("status = ?", models.OperationStatusClosed).
		Where("exit_date IS NOT NULL").
		Where("exit_date >= ?", since).
		Where("exit_date < ?", until)
	if strings.TrimSpace(strategy) != "" {
		query = query.Where("strategy_type = ?", strategy)
	}
	var items []models.Operation
	if err := query.Order("exit_date asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Rotations ---------------------------------------------------------------

func (s *Store) InsertRotationTx(tx *gorm.DB, item *models.Rotation) error {
	if tx == nil || item == nil {
		return nil
	}
	return tx.Create(item).Error
}

func (s *Store) ListRotations(ctx context.Context, limit int) ([]models.Rotation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Rotation
	if err := s.db.WithContext(ctx).
		Model(&models.Rotation{}).
		Order("rotation_date desc").
		Limit(normalizeLimit(limit, 10)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Drawdown events ---------------------------------------------------------

func (s *Store) InsertDrawdownEvent(ctx context.Context, item *models.DrawdownEvent) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetDrawdownEventByID(ctx context.Context, id uint64) (*models.DrawdownEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.DrawdownEvent
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetActiveDrawdownAtOrAbove(ctx context.Context, level int) (*models.DrawdownEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.DrawdownEvent
	err := s.db.WithContext(ctx).
		Where("end_date IS NULL").
		Where("level >= ?", level).
		Order("level desc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListDrawdownEvents(ctx context.Context, params repository.ListDrawdownEventsParams) ([]models.DrawdownEvent, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.DrawdownEvent{})
	if params.ActiveOnly {
		query = query.Where("end_date IS NULL")
	}
	var items []models.DrawdownEvent
	if err := query.
		Order("start_date desc").
		Limit(normalizeLimit(params.Limit, 10)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateDrawdownEvent(ctx context.Context, id uint64, updates map[string]any) error {
	if s == nil || s.db == nil || len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.DrawdownEvent{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// --- Strategy performance ----------------------------------------------------

func (s *Store) UpsertStrategyPerformance(ctx context.Context, item *models.StrategyPerformance) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "strategy_type"},
			{Name: "period_start"},
			{Name: "period_end"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"win_count",
			"loss_count",
			"profit_loss",
			"profit_loss_percentage",
			"max_drawdown",
			"notes",
		}),
	}).Create(item).Error
}

func (s *Store) ListStrategyPerformance(ctx context.Context, strategy *string) ([]models.StrategyPerformance, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.StrategyPerformance{})
	if strategy != nil && strings.TrimSpace(*strategy) != "" {
		query = query.Where("strategy_type = ?", strings.TrimSpace(*strategy))
	}
	var items []models.StrategyPerformance
	if err := query.
		Order("period_start desc").
		Order("strategy_type asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Helpers -----------------------------------------------------------------

func applyOrder(query *gorm.DB, sortBy, sortDir, fallback string) *gorm.DB {
	column := strings.TrimSpace(sortBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if strings.EqualFold(strings.TrimSpace(sortDir), "asc") {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

var _ repository.Repository = (*Store)(nil)
