// Package gormdb stores orders through GORM. The same schema runs on
// PostgreSQL and SQLite.
package gormdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/choufli-storefront/internal/domains/orders/domain"
	"github.com/Apurer/choufli-storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders using GORM. Caller manages DB lifecycle and
// schema (see platform/migrations).
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OrderRecord maps the order aggregate to the orders table.
type OrderRecord struct {
	ID           int64             `gorm:"primaryKey;autoIncrement;column:id"`
	Name         string            `gorm:"column:name;not null"`
	Phone        string            `gorm:"column:phone;not null"`
	Address      string            `gorm:"column:address;not null"`
	Items        []domain.LineItem `gorm:"column:items_json;type:text;not null;serializer:json"`
	Total        int64             `gorm:"column:total;not null"`
	SubmissionID *string           `gorm:"column:submission_id;size:128;uniqueIndex:idx_orders_submission_id"`
	CreatedAt    time.Time         `gorm:"column:created_at;not null;index:idx_orders_created_at"`
}

func (OrderRecord) TableName() string { return "orders" }

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	record.ID = 0
	record.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateSubmission
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.Order, error) {
	return r.first(ctx, "submission_id = ?", submissionID)
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record OrderRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&OrderRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []OrderRecord
	query := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) OrderRecord {
	rec := OrderRecord{
		ID:        order.ID,
		Name:      order.Customer.Name,
		Phone:     order.Customer.Phone,
		Address:   order.Customer.Address,
		Items:     order.Items,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
	if rec.Items == nil {
		rec.Items = []domain.LineItem{}
	}
	if order.SubmissionID != "" {
		key := order.SubmissionID
		rec.SubmissionID = &key
	}
	return rec
}

func (r OrderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID: r.ID,
		Customer: domain.Customer{
			Name:    r.Name,
			Phone:   r.Phone,
			Address: r.Address,
		},
		Items:     r.Items,
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
	}
	if order.Items == nil {
		order.Items = []domain.LineItem{}
	}
	if r.SubmissionID != nil {
		order.SubmissionID = *r.SubmissionID
	}
	return order
}
