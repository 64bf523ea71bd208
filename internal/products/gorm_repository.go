package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// productRecord es el mapeo GORM de la tabla products, timestamps incluidos.
type productRecord struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	Name         string          `gorm:"size:100;not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Availability bool            `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (productRecord) TableName() string {
	return "products"
}

func (record productRecord) toProduct() Product {
	return Product{
		ID:           record.ID,
		Name:         record.Name,
		Price:        record.Price,
		Availability: record.Availability,
	}
}

// Columnas públicas; created_at/updated_at quedan fuera de toda lectura.
var publicColumns = []string{"id", "name", "price", "availability"}

// GormRepository implementa Store sobre GORM (SQLite en local y en tests).
// SQLite no respeta la escala de numeric(10,2), así que price se redondea
// acá para devolver lo mismo que PostgreSQL.
type GormRepository struct {
	database *gorm.DB
}

// NewGormRepository crea el gateway GORM.
func NewGormRepository(database *gorm.DB) *GormRepository {
	return &GormRepository{database: database}
}

// Migrate crea o ajusta la tabla products.
func (repository *GormRepository) Migrate(ctx context.Context) error {
	if err := repository.database.WithContext(ctx).AutoMigrate(&productRecord{}); err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}
	return nil
}

func (repository *GormRepository) List(ctx context.Context) ([]Product, error) {
	var records []productRecord
	err := repository.database.WithContext(ctx).
		Select(publicColumns).
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]Product, 0, len(records))
	for _, record := range records {
		products = append(products, record.toProduct())
	}
	return products, nil
}

func (repository *GormRepository) GetByID(ctx context.Context, id int64) (Product, error) {
	var record productRecord
	err := repository.database.WithContext(ctx).
		Select(publicColumns).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Product{}, ErrorNotFound
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return record.toProduct(), nil
}

func (repository *GormRepository) Create(ctx context.Context, input CreateProductInput) (Product, error) {
	record := productRecord{
		Name:         input.Name,
		Price:        input.Price.Round(priceScale),
		Availability: input.availability(),
	}
	if err := repository.database.WithContext(ctx).Create(&record).Error; err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return record.toProduct(), nil
}

func (repository *GormRepository) Replace(ctx context.Context, id int64, input ReplaceProductInput) (Product, error) {
	// Con map se escriben también los valores cero (availability=false).
	result := repository.database.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":         input.Name,
			"price":        input.Price.Round(priceScale),
			"availability": input.Availability,
		})
	if result.Error != nil {
		return Product{}, fmt.Errorf("replace product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return Product{}, ErrorNotFound
	}
	return repository.GetByID(ctx, id)
}

func (repository *GormRepository) ToggleAvailability(ctx context.Context, id int64) (Product, error) {
	result := repository.database.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", id).
		Update("availability", gorm.Expr("NOT availability"))
	if result.Error != nil {
		return Product{}, fmt.Errorf("toggle availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return Product{}, ErrorNotFound
	}
	return repository.GetByID(ctx, id)
}

func (repository *GormRepository) Delete(ctx context.Context, id int64) error {
	result := repository.database.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrorNotFound
	}
	return nil
}
