package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	MsgNotBlank       = "This value should not be blank."
	MsgNotNull        = "This value should not be null."
	MsgInvalidEmail   = "This value is not a valid email address."
	MsgPositiveOrZero = "This value should be either positive or zero."
	MsgPositive       = "This value should be positive."
	MsgUnknownDomain  = "The email domain does not accept mail."
	MsgTooLongFormat  = "This value is too long. It should have %d characters or less."
)

// Column sizes, as declared on the models.
const (
	MaxEmailLength = 180
	MaxNameLength  = 255
	MaxPhoneLength = 30
)

var validate = validator.New()

type Violations []httperr.Violation

func (v *Violations) add(field, message string) {
	*v = append(*v, httperr.Violation{Field: field, Message: message})
}

// Err turns the collected violations into a ValidationError, or nil.
func (v Violations) Err() error {
	return httperr.NewValidation(v)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// tooLong counts characters, not bytes, like a varchar column does.
func tooLong(s string, limit int) bool {
	return validate.Var(s, fmt.Sprintf("max=%d", limit)) != nil
}

func (v *Violations) addTooLong(field string, limit int) {
	v.add(field, fmt.Sprintf(MsgTooLongFormat, limit))
}

// User checks a user before the password is hashed.
func User(u *models.User) Violations {
	var v Violations

	switch {
	case blank(u.Email):
		v.add("email", MsgNotBlank)
	case tooLong(u.Email, MaxEmailLength):
		v.addTooLong("email", MaxEmailLength)
	case validate.Var(u.Email, "email") != nil:
		v.add("email", MsgInvalidEmail)
	}

	if u.Password == "" {
		v.add("password", MsgNotBlank)
	}

	return v
}

// Salon checks a salon before it is persisted. A salon owned by a user that
// is not yet stored (registration) is recognised through owner.
func Salon(s *models.Salon) Violations {
	var v Violations

	switch {
	case blank(s.Name):
		v.add("name", MsgNotBlank)
	case tooLong(s.Name, MaxNameLength):
		v.addTooLong("name", MaxNameLength)
	}
	if blank(s.Address) {
		v.add("address", MsgNotBlank)
	}
	if s.PhoneNumber != nil && tooLong(*s.PhoneNumber, MaxPhoneLength) {
		v.addTooLong("phoneNumber", MaxPhoneLength)
	}
	if s.OwnerID == 0 && s.Owner == nil {
		v.add("owner", MsgNotNull)
	}

	return v
}

func Service(s *models.Service) Violations {
	var v Violations

	switch {
	case blank(s.Name):
		v.add("name", MsgNotBlank)
	case tooLong(s.Name, MaxNameLength):
		v.addTooLong("name", MaxNameLength)
	}

	switch {
	case s.Price == nil:
		v.add("price", MsgNotBlank)
	case *s.Price < 0:
		v.add("price", MsgPositiveOrZero)
	}

	switch {
	case s.DurationMin == nil:
		v.add("duration", MsgNotBlank)
	case *s.DurationMin <= 0:
		v.add("duration", MsgPositive)
	}

	if s.SalonID == 0 && s.Salon == nil {
		v.add("salon", MsgNotNull)
	}

	return v
}
