package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// FileStore persiste el agregado como un archivo JSON único.
//
// Escritor único: el mutex serializa todas las mutaciones, así que cada
// transformación observa un estado que ya refleja todas las anteriores y hay
// como máximo una escritura física en vuelo. La durabilidad es todo-o-nada:
// se escribe a un archivo temporal y se renombra encima (rename atómico), de
// modo que el documento nunca queda a medio escribir.
//
// Sin cancelación ni timeout: una mutación encolada corre hasta terminar, y
// una mutación colgada bloquea a las siguientes. Aceptable para el despliegue
// de proceso único al que apunta este sistema.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore construye el adaptador. El directorio se crea al escribir.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read carga y normaliza el documento actual. Un archivo inexistente o
// ilegible equivale a un almacén recién inicializado; las lecturas no esperan
// a la cola de escritura (el rename atómico garantiza ver siempre un
// documento completo, el último confirmado).
func (s *FileStore) Read(_ context.Context) (*entity.Database, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entity.NewDatabase(), nil
		}
		return nil, fmt.Errorf("store: leer %s: %w", s.path, err)
	}
	return DecodeDatabase(data), nil
}

// Mutate aplica la transformación detrás de todas las mutaciones previas.
// Si fn devuelve error no se persiste nada y el documento queda intacto.
func (s *FileStore) Mutate(ctx context.Context, fn func(db *entity.Database) error) (*entity.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(db); err != nil {
		return nil, err
	}
	if err := s.write(db); err != nil {
		return nil, err
	}
	return db, nil
}

func (s *FileStore) write(db *entity.Database) error {
	data, err := EncodeDatabase(db)
	if err != nil {
		return fmt.Errorf("store: serializar documento: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: crear directorio: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: escribir temporal: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: renombrar %s: %w", tmp, err)
	}
	return nil
}
