package salon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/authz"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/media"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/storage"
)

const (
	msgNotOwnerImage = "Not authorized to change this salon"
	msgInvalidImage  = "This file is not a valid image."
)

var ErrStorageDisabled = httperr.UnavailableError{Message: "image storage is not configured"}

type UploadSalonImage struct {
	repo     domain.Repository
	uploader storage.Uploader
	audit    audit.Sink
}

// NewUploadSalonImage accepts a nil uploader; uploads then fail with
// ErrStorageDisabled.
func NewUploadSalonImage(
	repo domain.Repository,
	uploader storage.Uploader,
	audit audit.Sink,
) *UploadSalonImage {
	return &UploadSalonImage{
		repo:     repo,
		uploader: uploader,
		audit:    audit,
	}
}

func (uc *UploadSalonImage) Execute(
	ctx context.Context,
	salonID uint,
	in Payload[io.Reader],
) (*models.Salon, error) {

	id, err := authz.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnership(id, salon, msgNotOwnerImage); err != nil {
		return nil, err
	}

	if uc.uploader == nil {
		return nil, ErrStorageDisabled
	}

	body, err := in.Decode()
	if err != nil {
		return nil, err
	}

	encoded, err := media.ToWebP(body, media.DefaultMaxEdge, media.DefaultQuality)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return nil, httperr.ValidationError{Violations: []httperr.Violation{
				{Field: "image", Message: msgInvalidImage},
			}}
		}
		return nil, err
	}

	key := fmt.Sprintf("salons/%d/%s.webp", salon.ID, uuid.NewString())
	url, err := uc.uploader.Upload(ctx, key, media.ContentType, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSalonImage(ctx, salon.ID, url); err != nil {
		return nil, err
	}
	salon.ImageURL = &url

	uc.audit.Dispatch(audit.Event{
		SalonID:  &salon.ID,
		UserID:   &id.UserID,
		Action:   domain.ActionSalonImageUpdated,
		Entity:   domain.EntitySalon,
		EntityID: &salon.ID,
		Metadata: map[string]any{"key": key, "bytes": len(encoded)},
	})

	return salon, nil
}
