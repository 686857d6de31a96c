// Package memory implementa los puertos de persistencia en memoria.
// Sirve como driver de desarrollo (STORAGE_DRIVER=memory) y como backend de los tests
// de casos de uso. Un único mutex serializa escrituras; Run toma una copia de los
// mapas y la restaura si fn falla, de modo que una transacción es todo o nada.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

var _ repository.TxRunner = (*DB)(nil)

type tables struct {
	products    map[string]entity.Product
	stores      map[string]entity.Store
	prices      map[string]entity.Price
	validations map[string]entity.Validation
	users       map[string]entity.User
}

func (t tables) clone() tables {
	return tables{
		products:    maps.Clone(t.products),
		stores:      maps.Clone(t.stores),
		prices:      maps.Clone(t.prices),
		validations: maps.Clone(t.validations),
		users:       maps.Clone(t.users),
	}
}

// DB almacén en memoria compartido por todos los repositorios.
type DB struct {
	mu   sync.RWMutex
	data tables
}

// New crea un almacén vacío.
func New() *DB {
	return &DB{data: tables{
		products:    map[string]entity.Product{},
		stores:      map[string]entity.Store{},
		prices:      map[string]entity.Price{},
		validations: map[string]entity.Validation{},
		users:       map[string]entity.User{},
	}}
}

// session acceso a las tablas: con lock propio (fuera de tx) o ya bloqueado por Run.
type session struct {
	db   *DB
	inTx bool
}

func (s session) read(fn func(t *tables)) {
	if !s.inTx {
		s.db.mu.RLock()
		defer s.db.mu.RUnlock()
	}
	fn(&s.db.data)
}

func (s session) write(fn func(t *tables)) {
	if !s.inTx {
		s.db.mu.Lock()
		defer s.db.mu.Unlock()
	}
	fn(&s.db.data)
}

// Repos devuelve los repositorios fuera de transacción.
func (db *DB) Repos() repository.TxRepos {
	return db.repos(session{db: db})
}

func (db *DB) repos(s session) repository.TxRepos {
	return repository.TxRepos{
		Products:    &ProductRepo{s: s},
		Stores:      &StoreRepo{s: s},
		Prices:      &PriceRepo{s: s},
		Validations: &ValidationRepo{s: s},
		Users:       &UserRepo{s: s},
	}
}

// Run ejecuta fn con acceso exclusivo; si fn falla se descartan sus cambios.
func (db *DB) Run(ctx context.Context, fn func(r repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot := db.data.clone()
	if err := fn(db.repos(session{db: db, inTx: true})); err != nil {
		db.data = snapshot
		return err
	}
	return nil
}

// Ping siempre disponible.
func (db *DB) Ping(ctx context.Context) error {
	return ctx.Err()
}
