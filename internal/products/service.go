package products

import "context"

// Service orquesta el gateway. Las operaciones sobre un id hacen
// lectura previa (fetch, branch, act) para que "no existe" sea
// siempre ErrorNotFound y nunca se intente mutar un id inexistente.
type Service struct {
	store Store
}

// NewService crea un service de products.
func NewService(store Store) *Service {
	return &Service{store: store}
}

func (service *Service) List(ctx context.Context) ([]Product, error) {
	return service.store.List(ctx)
}

func (service *Service) Get(ctx context.Context, id int64) (Product, error) {
	return service.store.GetByID(ctx, id)
}

func (service *Service) Create(ctx context.Context, input CreateProductInput) (Product, error) {
	return service.store.Create(ctx, input)
}

// Replace exige que el producto exista antes de pisarlo.
func (service *Service) Replace(ctx context.Context, id int64, input ReplaceProductInput) (Product, error) {
	if _, err := service.store.GetByID(ctx, id); err != nil {
		return Product{}, err
	}
	return service.store.Replace(ctx, id, input)
}

// ToggleAvailability invierte availability de un producto existente.
func (service *Service) ToggleAvailability(ctx context.Context, id int64) (Product, error) {
	if _, err := service.store.GetByID(ctx, id); err != nil {
		return Product{}, err
	}
	return service.store.ToggleAvailability(ctx, id)
}

// Delete elimina un producto existente.
func (service *Service) Delete(ctx context.Context, id int64) error {
	if _, err := service.store.GetByID(ctx, id); err != nil {
		return err
	}
	return service.store.Delete(ctx, id)
}
