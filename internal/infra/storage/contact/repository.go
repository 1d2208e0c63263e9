package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DroneBookingService/pkg/txmanager"
)

var columns = []string{
	"id",
	"company_ref",
	"name",
	"phone",
	"email",
	"available_onsite",
	"created_at",
}

// Repository репозиторий контактов на объекте, привязанных к компании
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория контактов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый контакт.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, contact *domain.SiteContact) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contacts").
		Columns(columns...).
		Values(
			contact.ID,
			contact.CompanyRef,
			contact.Name,
			contact.Phone,
			contact.Email,
			contact.AvailableOnsite,
			contact.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает контакт компании по ID
func (r *Repository) GetByID(ctx context.Context, companyRef, id string) (*domain.SiteContact, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("contacts").
		Where(squirrel.Eq{"id": id, "company_ref": companyRef}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	contact, err := scanContact(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan contact: %v", ErrScanRow, err)
	}

	return contact, nil
}

// ListByCompany получает историю контактов компании, новые первыми
func (r *Repository) ListByCompany(ctx context.Context, companyRef string) ([]*domain.SiteContact, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("contacts").
		Where(squirrel.Eq{"company_ref": companyRef}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	contacts := make([]*domain.SiteContact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByCompany - scan row: %v", ErrScanRow, err)
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCompany - rows error: %v", ErrScanRow, err)
	}

	return contacts, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(s scanner) (*domain.SiteContact, error) {
	var contact domain.SiteContact
	var email sql.NullString

	err := s.Scan(
		&contact.ID,
		&contact.CompanyRef,
		&contact.Name,
		&contact.Phone,
		&email,
		&contact.AvailableOnsite,
		&contact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		contact.Email = &email.String
	}
	return &contact, nil
}
