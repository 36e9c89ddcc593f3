package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver and gorm errors onto the httperr taxonomy. entity
// names the row being read or written; conflict is used for duplicates.
func translate(err error, entity string, conflict httperr.ConflictError) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return httperr.NotFoundError{Entity: entity}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return httperr.NotFoundError{Entity: entity}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return conflict
		case pgForeignKeyViolation:
			return httperr.NotFoundError{Entity: entity}
		}
	}

	// sqlite without error translation
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return conflict
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return httperr.NotFoundError{Entity: entity}
	}

	return err
}
