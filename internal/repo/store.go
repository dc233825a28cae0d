package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dsmolkov/ecommerce_backend/internal/models"
)

// CartLine is a cart row joined with its current product record. The price
// seen here is the live catalog price, not a snapshot.
type CartLine struct {
	Item    models.CartItem `json:"item"`
	Product models.Product  `json:"product"`
}

// Store is the persistence boundary the services depend on. Implementations
// must make InTx atomic: either every write inside the callback becomes
// visible or none do.
type Store interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)

	ProductByID(ctx context.Context, id uint) (*models.Product, error)

	CartLines(ctx context.Context, userID uint) ([]CartLine, error)
	CartItemByProduct(ctx context.Context, userID, productID uint) (*models.CartItem, error)
	CartItemByID(ctx context.Context, userID, id uint) (*models.CartItem, error)
	SaveCartItem(ctx context.Context, item *models.CartItem) error
	DeleteCartItem(ctx context.Context, item *models.CartItem) error
	ClearCart(ctx context.Context, userID uint) (int64, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	OrderByID(ctx context.Context, id uint) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error
	OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error)
	AllOrders(ctx context.Context) ([]models.Order, error)

	InTx(ctx context.Context, fn func(Store) error) error
}

type GormStore struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) CartLines(ctx context.Context, userID uint) ([]CartLine, error) {
	var items []models.CartItem
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		var p models.Product
		if err := s.DB.WithContext(ctx).First(&p, it.ProductID).Error; err != nil {
			return nil, err
		}
		lines = append(lines, CartLine{Item: it, Product: p})
	}
	return lines, nil
}

func (s *GormStore) CartItemByProduct(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) CartItemByID(ctx context.Context, userID, id uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return s.DB.WithContext(ctx).Save(item).Error
}

func (s *GormStore) DeleteCartItem(ctx context.Context, item *models.CartItem) error {
	return s.DB.WithContext(ctx).Delete(item).Error
}

// ClearCart deletes the user's cart rows and reports how many were actually
// removed. Under concurrent checkouts the count tells the caller whether
// another transaction consumed the cart first.
func (s *GormStore) ClearCart(ctx context.Context, userID uint) (int64, error) {
	res := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.DB.WithContext(ctx).Create(order).Error
}

func (s *GormStore) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	return s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *GormStore) OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// InTx runs fn against a Store bound to one database transaction.
func (s *GormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}
