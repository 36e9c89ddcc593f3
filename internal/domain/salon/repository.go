package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Repository is the persistence boundary for users, salons and services.
// Lookups that miss return httperr.NotFoundError; unique violations return
// httperr.ConflictError.
type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. Returning an error rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- User --------
	CreateUser(
		ctx context.Context,
		user *models.User,
	) error

	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetUserByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	// -------- Salon --------
	CreateSalon(
		ctx context.Context,
		salon *models.Salon,
	) error

	// GetSalonByID loads the owner and the services with explicit queries.
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonByName(
		ctx context.Context,
		name string,
	) (*models.Salon, error)

	ListSalons(
		ctx context.Context,
	) ([]models.Salon, error)

	UpdateSalonImage(
		ctx context.Context,
		salonID uint,
		imageURL string,
	) error

	// DeleteSalon removes the salon and every service it owns.
	DeleteSalon(
		ctx context.Context,
		id uint,
	) error

	// -------- Service --------
	CreateService(
		ctx context.Context,
		svc *models.Service,
	) error

	// GetServiceByID loads the parent salon so ownership can be resolved.
	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ListServicesBySalon(
		ctx context.Context,
		salonID uint,
	) ([]models.Service, error)

	UpdateService(
		ctx context.Context,
		svc *models.Service,
	) error

	DeleteService(
		ctx context.Context,
		id uint,
	) error
}
