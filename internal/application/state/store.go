// Package state mantiene el documento raíz persistido: carga con relleno de valores por defecto,
// lectura y actualización todo-o-nada serializadas en un único escritor.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/sistema-facturador/internal/application/ports"
	"github.com/jhoicas/sistema-facturador/internal/domain"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
	"github.com/jhoicas/sistema-facturador/internal/domain/repository"
	"github.com/jhoicas/sistema-facturador/pkg/logger"
)

var _ ports.DocumentRunner = (*Store)(nil)

// corruptSuffix sufijo de la clave donde se respalda un documento ilegible antes de reiniciarlo.
const corruptSuffix = ".corrupt"

// Store implementa ports.DocumentRunner sobre un DocumentRepository.
// Cada operación lee el blob actual (otro proceso, p. ej. la CLI, pudo escribirlo).
type Store struct {
	repo     repository.DocumentRepository
	key      string
	skeleton []byte
	log      *logger.Logger

	mu sync.Mutex
}

// NewStore construye el store. skeleton es el documento por defecto usado para rellenar y reiniciar.
func NewStore(repo repository.DocumentRepository, key string, skeleton *entity.Document, log *logger.Logger) (*Store, error) {
	raw, err := json.Marshal(skeleton)
	if err != nil {
		return nil, fmt.Errorf("state: serializar esqueleto: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{repo: repo, key: key, skeleton: raw, log: log.Component("state")}, nil
}

// Load devuelve el documento guardado combinado sobre el esqueleto. Si no existe o no se puede
// leer, persiste el esqueleto y lo devuelve (el blob ilegible se respalda bajo key+".corrupt").
func (s *Store) Load(ctx context.Context) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// View ejecuta fn sobre el documento actual. Los cambios que fn haga no se guardan.
func (s *Store) View(ctx context.Context, fn func(doc *entity.Document) error) error {
	s.mu.Lock()
	doc, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update ejecuta fn sobre el documento y lo guarda completo. Si fn falla no se escribe nada.
func (s *Store) Update(ctx context.Context, fn func(doc *entity.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(ctx, doc)
}

func (s *Store) load(ctx context.Context) (*entity.Document, error) {
	raw, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Info().Str("key", s.key).Msg("documento inexistente, se crea el esqueleto por defecto")
		return s.reset(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("state: leer documento: %w", err)
	}

	doc, parseErr := s.decode(raw)
	if parseErr != nil {
		s.log.Warn().Err(parseErr).Str("key", s.key).Str("backup", s.key+corruptSuffix).
			Msg("documento ilegible, se reinicia al esqueleto por defecto")
		if err := s.repo.Put(ctx, s.key+corruptSuffix, raw); err != nil {
			return nil, fmt.Errorf("state: respaldar documento ilegible: %w", err)
		}
		return s.reset(ctx)
	}
	return doc, nil
}

func (s *Store) decode(raw []byte) (*entity.Document, error) {
	merged, err := mergeOverSkeleton(s.skeleton, raw)
	if err != nil {
		return nil, err
	}
	var doc entity.Document
	if err := json.Unmarshal(merged, &doc); err != nil {
		return nil, err
	}
	normalize(&doc)
	return &doc, nil
}

func (s *Store) reset(ctx context.Context) (*entity.Document, error) {
	var doc entity.Document
	if err := json.Unmarshal(s.skeleton, &doc); err != nil {
		return nil, fmt.Errorf("state: esqueleto: %w", err)
	}
	if err := s.save(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) save(ctx context.Context, doc *entity.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("state: serializar documento: %w", err)
	}
	if err := s.repo.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("state: guardar documento: %w", err)
	}
	return nil
}

// normalize garantiza colecciones no nulas tras decodificar valores null guardados.
func normalize(doc *entity.Document) {
	if doc.Settings.Series == nil {
		doc.Settings.Series = map[string]string{}
	}
	if doc.Settings.Counters == nil {
		doc.Settings.Counters = map[string]int{}
	}
	if doc.Users == nil {
		doc.Users = []entity.User{}
	}
	if doc.Proveedores == nil {
		doc.Proveedores = []entity.Supplier{}
	}
	if doc.Compras == nil {
		doc.Compras = []entity.Purchase{}
	}
	if doc.Inventario == nil {
		doc.Inventario = []entity.InventoryItem{}
	}
	if doc.Clientes == nil {
		doc.Clientes = []entity.Customer{}
	}
	if doc.Ventas == nil {
		doc.Ventas = []entity.Sale{}
	}
}
