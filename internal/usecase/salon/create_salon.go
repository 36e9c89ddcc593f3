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

type CreateSalon struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewCreateSalon(
	repo domain.Repository,
	audit audit.Sink,
) *CreateSalon {
	return &CreateSalon{
		repo:  repo,
		audit: audit,
	}
}

// Execute requires ROLE_SALON_OWNER. The owner is always the caller; any
// owner in the payload is ignored.
func (uc *CreateSalon) Execute(
	ctx context.Context,
	in Payload[dto.SalonWrite],
) (*models.Salon, error) {

	id, err := authz.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireRole(id, models.RoleSalonOwner); err != nil {
		return nil, err
	}

	write, err := in.Decode()
	if err != nil {
		return nil, err
	}

	salon := &models.Salon{OwnerID: id.UserID}
	write.Apply(salon)

	if err := validators.Salon(salon).Err(); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateSalon(ctx, salon); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &salon.ID,
		UserID:   &id.UserID,
		Action:   domain.ActionSalonCreated,
		Entity:   domain.EntitySalon,
		EntityID: &salon.ID,
	})

	return uc.repo.GetSalonByID(ctx, salon.ID)
}
