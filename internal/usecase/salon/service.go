package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/authz"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

const (
	msgNotOwnerAdd    = "Not authorized to add services to this salon"
	msgNotOwnerUpdate = "Not authorized to update this service"
	msgNotOwnerDelete = "Not authorized to delete this service"
)

// ======================================================
// CREATE
// ======================================================

type CreateService struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewCreateService(
	repo domain.Repository,
	audit audit.Sink,
) *CreateService {
	return &CreateService{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	salonID uint,
	in Payload[dto.ServiceWrite],
) (*models.Service, error) {

	id, err := authz.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(id, salon, msgNotOwnerAdd); err != nil {
		return nil, err
	}

	write, err := in.Decode()
	if err != nil {
		return nil, err
	}

	svc := &models.Service{}
	write.Apply(svc)
	salon.AddService(svc)

	if err := validators.Service(svc).Err(); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &salon.ID,
		UserID:   &id.UserID,
		Action:   domain.ActionServiceCreated,
		Entity:   domain.EntityService,
		EntityID: &svc.ID,
		Metadata: map[string]any{"name": svc.Name},
	})

	return svc, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateService struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewUpdateService(
	repo domain.Repository,
	audit audit.Sink,
) *UpdateService {
	return &UpdateService{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies the fields present in the payload onto the stored
// service. The parent salon never changes.
func (uc *UpdateService) Execute(
	ctx context.Context,
	serviceID uint,
	in Payload[dto.ServiceWrite],
) (*models.Service, error) {

	id, err := authz.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(id, svc, msgNotOwnerUpdate); err != nil {
		return nil, err
	}

	write, err := in.Decode()
	if err != nil {
		return nil, err
	}
	write.Apply(svc)

	if err := validators.Service(svc).Err(); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &svc.SalonID,
		UserID:   &id.UserID,
		Action:   domain.ActionServiceUpdated,
		Entity:   domain.EntityService,
		EntityID: &svc.ID,
	})

	return svc, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteService struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewDeleteService(
	repo domain.Repository,
	audit audit.Sink,
) *DeleteService {
	return &DeleteService{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteService) Execute(
	ctx context.Context,
	serviceID uint,
) error {

	id, err := authz.RequireAuthenticated(ctx)
	if err != nil {
		return err
	}

	svc, err := uc.repo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if err := authz.RequireOwnership(id, svc, msgNotOwnerDelete); err != nil {
		return err
	}

	if err := uc.repo.DeleteService(ctx, serviceID); err != nil {
		return err
	}

	salonID := svc.Salon.ID
	uc.audit.Dispatch(audit.Event{
		SalonID:  &salonID,
		UserID:   &id.UserID,
		Action:   domain.ActionServiceDeleted,
		Entity:   domain.EntityService,
		EntityID: &serviceID,
		Metadata: map[string]any{"name": svc.Name},
	})

	return nil
}
