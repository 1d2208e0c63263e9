package contact

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

var createdAt = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contacts (id,company_ref,name,phone,email,available_onsite,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)")).
		WithArgs("c-1", "company-1", "Jane", "0123456789", "jane@example.com", true, createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &domain.SiteContact{
		ID:              "c-1",
		CompanyRef:      "company-1",
		Name:            "Jane",
		Phone:           "0123456789",
		Email:           ptr.Ptr("jane@example.com"),
		AvailableOnsite: true,
		CreatedAt:       createdAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExecError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO contacts").WillReturnError(errors.New("duplicate key"))

	err := repo.Create(context.Background(), &domain.SiteContact{ID: "c-1", CompanyRef: "company-1"})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestGetByID(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows(columns).
		AddRow("c-1", "company-1", "Jane", "0123456789", nil, false, createdAt)
	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts WHERE company_ref = $1 AND id = $2")).
		WithArgs("company-1", "c-1").
		WillReturnRows(rows)

	contact, err := repo.GetByID(context.Background(), "company-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", contact.Name)
	assert.Nil(t, contact.Email)
	assert.False(t, contact.AvailableOnsite)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM contacts").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "company-1", "missing")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestListByCompany(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows(columns).
		AddRow("c-2", "company-1", "Sam", "555", "sam@example.com", true, createdAt.Add(time.Hour)).
		AddRow("c-1", "company-1", "Jane", "0123456789", nil, true, createdAt)
	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts WHERE company_ref = $1 ORDER BY created_at DESC")).
		WithArgs("company-1").
		WillReturnRows(rows)

	contacts, err := repo.ListByCompany(context.Background(), "company-1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "c-2", contacts[0].ID)
	assert.Equal(t, "sam@example.com", ptr.Value(contacts[0].Email))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCompany_QueryError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM contacts").WillReturnError(errors.New("connection reset"))

	_, err := repo.ListByCompany(context.Background(), "company-1")
	assert.ErrorIs(t, err, ErrExecQuery)
}
