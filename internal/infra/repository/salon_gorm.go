package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

var (
	errEmailTaken = httperr.ConflictError{Field: "email", Message: "This email is already registered."}
	errDuplicate  = httperr.ConflictError{}
)

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

func (r *SalonGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SalonGormRepository{db: tx})
	})
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *SalonGormRepository) CreateUser(
	ctx context.Context,
	user *models.User,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(user).Error
	if err != nil {
		return fmt.Errorf("create user: %w", translate(err, "User", errEmailTaken))
	}
	return nil
}

func (r *SalonGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "User", errDuplicate)
	}
	return &user, nil
}

func (r *SalonGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, translate(err, "User", errDuplicate)
	}
	return &user, nil
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *SalonGormRepository) CreateSalon(
	ctx context.Context,
	salon *models.Salon,
) error {
	if salon.OwnerID == 0 && salon.Owner != nil {
		salon.OwnerID = salon.Owner.ID
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(salon).Error
	if err != nil {
		return fmt.Errorf("create salon: %w", translate(err, "User", errDuplicate))
	}
	return nil
}

func (r *SalonGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, translate(err, "Salon", errDuplicate)
	}

	if err := r.loadSalonRelations(ctx, []*models.Salon{&salon}); err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *SalonGormRepository) GetSalonByName(
	ctx context.Context,
	name string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		First(&salon).Error; err != nil {
		return nil, translate(err, "Salon", errDuplicate)
	}

	if err := r.loadSalonRelations(ctx, []*models.Salon{&salon}); err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *SalonGormRepository) ListSalons(
	ctx context.Context,
) ([]models.Salon, error) {

	var salons []models.Salon
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&salons).Error; err != nil {
		return nil, fmt.Errorf("list salons: %w", err)
	}

	ptrs := make([]*models.Salon, len(salons))
	for i := range salons {
		ptrs[i] = &salons[i]
	}
	if err := r.loadSalonRelations(ctx, ptrs); err != nil {
		return nil, err
	}
	return salons, nil
}

// loadSalonRelations fills Owner and Services with one query per relation.
func (r *SalonGormRepository) loadSalonRelations(
	ctx context.Context,
	salons []*models.Salon,
) error {
	if len(salons) == 0 {
		return nil
	}

	salonIDs := make([]uint, 0, len(salons))
	ownerIDs := make([]uint, 0, len(salons))
	for _, s := range salons {
		salonIDs = append(salonIDs, s.ID)
		ownerIDs = append(ownerIDs, s.OwnerID)
	}

	var owners []models.User
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ownerIDs).
		Find(&owners).Error; err != nil {
		return fmt.Errorf("load salon owners: %w", err)
	}
	byID := make(map[uint]*models.User, len(owners))
	for i := range owners {
		byID[owners[i].ID] = &owners[i]
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id IN ?", salonIDs).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return fmt.Errorf("load salon services: %w", err)
	}

	bySalon := make(map[uint]*models.Salon, len(salons))
	for _, s := range salons {
		s.Owner = byID[s.OwnerID]
		s.Services = make([]*models.Service, 0)
		bySalon[s.ID] = s
	}
	for i := range services {
		if s, ok := bySalon[services[i].SalonID]; ok {
			s.AddService(&services[i])
		}
	}
	return nil
}

func (r *SalonGormRepository) UpdateSalonImage(
	ctx context.Context,
	salonID uint,
	imageURL string,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Where("id = ?", salonID).
		Update("image_url", imageURL)
	if res.Error != nil {
		return fmt.Errorf("update salon image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundError{Entity: "Salon"}
	}
	return nil
}

func (r *SalonGormRepository) DeleteSalon(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salon_id = ?", id).
			Delete(&models.Service{}).Error; err != nil {
			return fmt.Errorf("delete salon services: %w", err)
		}

		res := tx.Delete(&models.Salon{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete salon: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.NotFoundError{Entity: "Salon"}
		}
		return nil
	})
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *SalonGormRepository) CreateService(
	ctx context.Context,
	svc *models.Service,
) error {
	if svc.SalonID == 0 && svc.Salon != nil {
		svc.SalonID = svc.Salon.ID
	}

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(svc).Error
	if err != nil {
		return fmt.Errorf("create service: %w", translate(err, "Salon", errDuplicate))
	}
	return nil
}

func (r *SalonGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, translate(err, "Service", errDuplicate)
	}

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, svc.SalonID).Error; err != nil {
		return nil, fmt.Errorf("load service salon: %w", translate(err, "Salon", errDuplicate))
	}
	svc.Salon = &salon

	return &svc, nil
}

func (r *SalonGormRepository) ListServicesBySalon(
	ctx context.Context,
	salonID uint,
) ([]models.Service, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Select("id", "name", "owner_id").
		First(&salon, salonID).Error; err != nil {
		return nil, translate(err, "Salon", errDuplicate)
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	for i := range services {
		services[i].Salon = &salon
	}
	return services, nil
}

func (r *SalonGormRepository) UpdateService(
	ctx context.Context,
	svc *models.Service,
) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(svc).Error
	if err != nil {
		return fmt.Errorf("update service: %w", translate(err, "Salon", errDuplicate))
	}
	return nil
}

func (r *SalonGormRepository) DeleteService(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundError{Entity: "Service"}
	}
	return nil
}

var _ domain.Repository = (*SalonGormRepository)(nil)
