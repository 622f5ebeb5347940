package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/KayTee1/E-commerce/internal/model"
)

// ==================== 接口定义 ====================

// ListingRepository 商品仓储接口
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Update(ctx context.Context, listing *model.Listing) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Listing, error)
	ListByOwner(ctx context.Context, owner string) ([]model.Listing, error)
}

// ==================== 仓储实现 ====================

type listingRepo struct {
	db *gorm.DB
}

// NewListingRepository 创建商品仓储
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepo) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) Update(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *listingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Listing{}, "id = ?", id).Error
}

func (r *listingRepo) List(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&listings).Error
	return listings, err
}

func (r *listingRepo) ListByOwner(ctx context.Context, owner string) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}
