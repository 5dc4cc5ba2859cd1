package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	pkgerrors "github.com/weaponlions/ecommerce-server/pkg/errors"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Classify maps persistence-layer failures onto the typed error codes the
// HTTP boundary renders. Callers wrap the result with operation context.
func Classify(err error, message string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	}

	switch pgCode(err) {
	case pgUniqueViolation:
		return pkgerrors.Wrap(pkgerrors.CodeDuplicate, err, message).
			WithDetails(map[string]any{"constraint": pgConstraint(err)})
	case pgForeignKeyViolation:
		// A delete blocked by dependents reads differently from an insert
		// naming a parent row that does not exist.
		if strings.Contains(strings.ToLower(err.Error()), "still referenced") {
			return pkgerrors.Wrap(pkgerrors.CodeReferenceConflict, err, message).
				WithDetails(map[string]any{"constraint": pgConstraint(err)})
		}
		return pkgerrors.Wrap(pkgerrors.CodeInvalidReference, err, message).
			WithDetails(map[string]any{"constraint": pgConstraint(err)})
	}

	// SQLite phrasing; only reachable from the in-memory test databases.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint failed") {
		return pkgerrors.Wrap(pkgerrors.CodeDuplicate, err, message)
	}
	if strings.Contains(msg, "foreign key constraint failed") {
		return pkgerrors.Wrap(pkgerrors.CodeInvalidReference, err, message)
	}

	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

// IsUniqueViolation reports whether the provided error references a unique
// constraint. When constraintName is provided, the helper looks for the
// constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if constraintName != "" {
		return strings.Contains(err.Error(), constraintName)
	}
	if pgCode(err) == pgUniqueViolation {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "unique constraint failed")
}

func pgCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func pgConstraint(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
