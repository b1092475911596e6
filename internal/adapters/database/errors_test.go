package database

import (
	"context"
	"errors"
	"testing"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/subscription"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofrs/uuid"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)
	return db, mock
}

func TestTranslate_MySQLDuplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepositoryDatabase(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `subscriptions`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	s := subscription.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), newClock().next())
	_, err := repo.Create(context.Background(), s)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrDuplicatePair))
	assert.Equal(t, "DUPLICATE_PAIR", apperr.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate_MySQLForeignKey(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewSubscriptionRepositoryDatabase(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `subscriptions`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
	mock.ExpectRollback()

	s := subscription.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), newClock().next())
	_, err := repo.Create(context.Background(), s)

	assert.True(t, errors.Is(err, apperr.ErrConstraintViolation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, nil))
	assert.True(t, errors.Is(translate(gorm.ErrDuplicatedKey, nil), apperr.ErrConstraintViolation))
	assert.True(t, errors.Is(translate(gorm.ErrCheckConstraintViolated, nil), apperr.ErrConstraintViolation))

	err := translate(errors.New("boom"), nil)
	assert.Equal(t, "INTERNAL_ERROR", apperr.CodeOf(err))
}
