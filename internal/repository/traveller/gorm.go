package traveller

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/janisto/travel-profiles/internal/platform/database"
)

// GormRepository implements Repository on a relational database.
type GormRepository struct {
	db *gorm.DB
}

var _ Repository = (*GormRepository)(nil)

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) List(ctx context.Context) ([]Traveller, error) {
	var out []Traveller
	if err := r.db.WithContext(ctx).Order("additional_id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list travellers: %w", err)
	}
	return out, nil
}

func (r *GormRepository) Get(ctx context.Context, additionalID int64) (*Traveller, error) {
	var t Traveller
	err := r.db.WithContext(ctx).Where("additional_id = ?", additionalID).Take(&t).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get traveller %d: %w", additionalID, err)
	}
	return &t, nil
}

func (r *GormRepository) ListByCustomer(ctx context.Context, customerID int64) ([]Traveller, error) {
	out := []Traveller{}
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("additional_id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list travellers of %d: %w", customerID, err)
	}
	return out, nil
}

func (r *GormRepository) Add(ctx context.Context, t *Traveller) (*Traveller, error) {
	row := Traveller{CustomerID: t.CustomerID, AdditionalName: t.AdditionalName}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error
	if database.IsForeignKeyViolation(err) {
		return nil, ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("add traveller: %w", err)
	}
	return &row, nil
}

func (r *GormRepository) Update(ctx context.Context, t *Traveller) (*Traveller, error) {
	row := Traveller{AdditionalID: t.AdditionalID, CustomerID: t.CustomerID, AdditionalName: t.AdditionalName}
	res := r.db.WithContext(ctx).
		Model(&Traveller{}).
		Where("additional_id = ?", row.AdditionalID).
		Updates(map[string]any{
			"customer_id":     row.CustomerID,
			"additional_name": row.AdditionalName,
		})
	if database.IsForeignKeyViolation(res.Error) {
		return nil, ErrOwnerNotFound
	}
	if res.Error != nil {
		return nil, fmt.Errorf("update traveller %d: %w", row.AdditionalID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (r *GormRepository) Delete(ctx context.Context, additionalID int64) (*Traveller, error) {
	var removed Traveller
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("additional_id = ?", additionalID).
		Delete(&removed)
	if res.Error != nil {
		return nil, fmt.Errorf("delete traveller %d: %w", additionalID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &removed, nil
}
