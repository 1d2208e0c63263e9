package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrBeginTx возвращается, если не удалось начать транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается, если не удалось зафиксировать транзакцию
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// DBExecutor общий интерфейс для *sql.DB и *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxBeginner источник транзакций (*sql.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type txKey struct{}

// Manager выполняет функции внутри транзакции, передавая её через context
type Manager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *Manager {
	return &Manager{db: db}
}

// Do выполняет fn в транзакции с уровнем READ COMMITTED
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции с уровнем SERIALIZABLE
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return nil
}

// GetExecutor возвращает транзакцию из контекста или fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return tx
	}
	return fallback
}

// IsInTransaction проверяет, есть ли в контексте активная транзакция
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok && tx != nil
}
