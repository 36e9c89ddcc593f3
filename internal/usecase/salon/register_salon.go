package salon

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// DomainChecker reports whether an e-mail address can receive mail.
type DomainChecker func(email string) bool

type RegisterSalon struct {
	repo        domain.Repository
	hasher      PasswordHasher
	audit       audit.Sink
	checkDomain DomainChecker
}

func NewRegisterSalon(
	repo domain.Repository,
	hasher PasswordHasher,
	audit audit.Sink,
	checkDomain DomainChecker,
) *RegisterSalon {
	return &RegisterSalon{
		repo:        repo,
		hasher:      hasher,
		audit:       audit,
		checkDomain: checkDomain,
	}
}

// Execute creates the owner account and its first salon in one transaction.
func (uc *RegisterSalon) Execute(
	ctx context.Context,
	in dto.RegisterSalonRequest,
) (*models.User, *models.Salon, error) {

	if field := in.FirstMissing(); field != "" {
		return nil, nil, httperr.MissingFieldError{Field: field}
	}

	user := &models.User{
		Email:    validators.NormalizeEmail(in.EmailValue()),
		Password: in.PasswordValue(),
		Roles:    []string{models.RoleUser, models.RoleSalonOwner},
	}

	salon := &models.Salon{Owner: user}
	dto.SalonWrite{
		Name:        in.SalonName,
		Address:     in.SalonAddress,
		PhoneNumber: in.SalonPhoneNumber,
		Description: in.SalonDescription,
	}.Apply(salon)

	// user first, then salon; the first failing entity is reported alone
	userViolations := validators.User(user)
	if len(userViolations) == 0 && uc.checkDomain != nil && !uc.checkDomain(user.Email) {
		userViolations = append(userViolations, httperr.Violation{
			Field:   "email",
			Message: validators.MsgUnknownDomain,
		})
	}
	if err := userViolations.Err(); err != nil {
		return nil, nil, err
	}
	if err := validators.Salon(salon).Err(); err != nil {
		return nil, nil, err
	}

	hash, err := uc.hasher.Hash(user.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		salon.OwnerID = user.ID
		return tx.CreateSalon(ctx, salon)
	})
	if err != nil {
		return nil, nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  &salon.ID,
		UserID:   &user.ID,
		Action:   domain.ActionUserRegistered,
		Entity:   domain.EntityUser,
		EntityID: &user.ID,
		Metadata: map[string]any{"email": user.Email, "salon": salon.Name},
	})

	return user, salon, nil
}
