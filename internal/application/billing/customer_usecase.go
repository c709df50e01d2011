package billing

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CustomerUseCase casos de uso de clientes. Los clientes son inmutables una
// vez creados (sin edición ni borrado en el alcance actual).
type CustomerUseCase struct {
	store Store
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(store Store) *CustomerUseCase {
	return &CustomerUseCase{store: store}
}

// Create registra un cliente nuevo. El nombre es obligatorio.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	customer := entity.Customer{
		ID:        NewCustomerID(),
		Name:      strings.TrimSpace(in.Name),
		ShortName: in.ShortName,
		Address:   in.Address,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: time.Now().UTC(),
	}
	_, err := uc.store.Mutate(ctx, func(db *entity.Database) error {
		db.Customers = append(db.Customers, customer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List devuelve todos los clientes registrados.
func (uc *CustomerUseCase) List(ctx context.Context) ([]entity.Customer, error) {
	db, err := uc.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return db.Customers, nil
}
