package profile

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

func (r *GormRepository) List(ctx context.Context) ([]Profile, error) {
	var out []Profile
	if err := r.db.WithContext(ctx).Order("customer_id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

func (r *GormRepository) Get(ctx context.Context, customerID int64) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Take(&p).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %d: %w", customerID, err)
	}
	return &p, nil
}

func (r *GormRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Where("email_id = ?", NormalizeEmail(email)).
		Order("customer_id").
		First(&p).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by email: %w", err)
	}
	return &p, nil
}

func (r *GormRepository) Add(ctx context.Context, p *Profile) (*Profile, error) {
	row := *p
	row.CustomerID = 0
	row.EmailID = NormalizeEmail(row.EmailID)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("add profile: %w", err)
	}
	return &row, nil
}

func (r *GormRepository) Update(ctx context.Context, p *Profile) (*Profile, error) {
	row := *p
	row.EmailID = NormalizeEmail(row.EmailID)
	res := r.db.WithContext(ctx).
		Model(&Profile{}).
		Where("customer_id = ?", row.CustomerID).
		Select(mutableColumns).
		Updates(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("update profile %d: %w", row.CustomerID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (r *GormRepository) Delete(ctx context.Context, customerID int64) (*Profile, error) {
	var removed Profile
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("customer_id = ?", customerID).
		Delete(&removed)
	if res.Error != nil {
		return nil, fmt.Errorf("delete profile %d: %w", customerID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &removed, nil
}
