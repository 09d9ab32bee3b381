package store

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/catalog-manager-api/infrastructure/database/postgres"
)

const slotsTable = "catalog_slots"

const createSlotsTableSQL = `CREATE TABLE IF NOT EXISTS catalog_slots (
	name       TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresSlot guarda o catálogo em uma linha da tabela catalog_slots
type PostgresSlot struct {
	conn postgres.Conn
	name string
}

func NewPostgresSlot(conn postgres.Conn, name string) *PostgresSlot {
	return &PostgresSlot{conn: conn, name: name}
}

// EnsureSchema cria a tabela de slots se ainda não existir
func (p *PostgresSlot) EnsureSchema(ctx context.Context) error {
	if _, err := p.conn.ExecContext(ctx, createSlotsTableSQL); err != nil {
		return errors.Wrap(err, "store: erro ao criar tabela catalog_slots")
	}
	return nil
}

func (p *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	query, args, err := buildReadQuery(p.name)
	if err != nil {
		return nil, err
	}

	var content string
	if err := p.conn.QueryRowContext(ctx, query, args...).Scan(&content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "store: erro ao ler catalog_slots")
	}

	return []byte(content), nil
}

func (p *PostgresSlot) Write(ctx context.Context, data []byte) error {
	query, args, err := buildUpsertQuery(p.name, data)
	if err != nil {
		return err
	}

	return p.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "store: erro ao gravar catalog_slots")
		}
		return nil
	})
}

func (p *PostgresSlot) Close() error {
	return p.conn.Close()
}

func buildReadQuery(name string) (string, []interface{}, error) {
	return squirrel.
		Select("content").
		From(slotsTable).
		Where(squirrel.Eq{"name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildUpsertQuery(name string, data []byte) (string, []interface{}, error) {
	return squirrel.
		Insert(slotsTable).
		Columns("name", "content", "updated_at").
		Values(name, string(data), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (name) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
