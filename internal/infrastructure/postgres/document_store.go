package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/store"
)

// DocumentStore guarda el agregado completo como una única fila jsonb, con la
// misma semántica de documento-completo que el almacén de archivo: cada
// mutación lee el estado actual, aplica la transformación y reemplaza el
// documento entero dentro de una transacción con SELECT ... FOR UPDATE.
//
// El mutex mantiene además la cola de escritor único dentro del proceso; el
// FOR UPDATE cubre el caso de otro proceso apuntando a la misma base (la
// numeración de facturas sigue sin ser segura entre procesos — ver
// invoicing.InvoiceNumber).
type DocumentStore struct {
	pool *pgxpool.Pool
	mu   sync.Mutex
}

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS billing_state (
			id  smallint PRIMARY KEY,
			doc jsonb NOT NULL
		)`
	seedRowSQL   = `INSERT INTO billing_state (id, doc) VALUES (1, $1) ON CONFLICT (id) DO NOTHING`
	selectSQL    = `SELECT doc FROM billing_state WHERE id = 1`
	selectForUpd = `SELECT doc FROM billing_state WHERE id = 1 FOR UPDATE`
	updateSQL    = `UPDATE billing_state SET doc = $1 WHERE id = 1`
)

// NewDocumentStore prepara la tabla y la fila única si no existen.
func NewDocumentStore(ctx context.Context, pool *pgxpool.Pool) (*DocumentStore, error) {
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("crear tabla billing_state: %w", err)
	}
	seed, err := store.EncodeDatabase(entity.NewDatabase())
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, seedRowSQL, seed); err != nil {
		return nil, fmt.Errorf("inicializar billing_state: %w", err)
	}
	return &DocumentStore{pool: pool}, nil
}

// Read devuelve el último documento confirmado, normalizado.
func (s *DocumentStore) Read(ctx context.Context) (*entity.Database, error) {
	var doc []byte
	if err := s.pool.QueryRow(ctx, selectSQL).Scan(&doc); err != nil {
		return nil, fmt.Errorf("leer billing_state: %w", err)
	}
	return store.DecodeDatabase(doc), nil
}

// Mutate aplica la transformación como reemplazo atómico del documento.
func (s *DocumentStore) Mutate(ctx context.Context, fn func(db *entity.Database) error) (*entity.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("abrir transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	if err := tx.QueryRow(ctx, selectForUpd).Scan(&doc); err != nil {
		return nil, fmt.Errorf("bloquear billing_state: %w", err)
	}
	db := store.DecodeDatabase(doc)
	if err := fn(db); err != nil {
		return nil, err
	}
	updated, err := store.EncodeDatabase(db)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, updateSQL, updated); err != nil {
		return nil, fmt.Errorf("escribir billing_state: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("confirmar transacción: %w", err)
	}
	return db, nil
}
