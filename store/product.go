package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/OmNinave/E-commerce-sub001/models"
)

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Categories").First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// ListProducts returns a page of the catalog, optionally filtered by
// category id. Page numbers start at 1.
func (s *Store) ListProducts(ctx context.Context, categoryID uint, page, pageSize int) ([]models.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := s.db.WithContext(ctx).Preload("Categories").Order("created_at DESC")
	if categoryID != 0 {
		q = q.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Where("pc.category_id = ?", categoryID)
	}

	var products []models.Product
	if err := q.Offset((page - 1) * pageSize).Limit(pageSize).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *Store) UpdateProduct(ctx context.Context, id uint, updates map[string]interface{}) (*models.Product, error) {
	res := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock is the single conditional statement the checkout pipeline
// relies on: the WHERE clause rejects the update when remaining stock is
// short, so two racing orders can never drive stock negative.
func (s *Store) DecrementStock(ctx context.Context, id uint, qty int) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
