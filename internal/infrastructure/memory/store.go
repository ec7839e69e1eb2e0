package memory

import (
	"context"
	"sync"

	appinv "github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

type movementRow struct {
	m   entity.StockMovement
	seq int64
}

// dataset contiene todas las tablas. Los valores se guardan por copia y nunca se mutan en sitio,
// así clone puede copiar solo los mapas.
type dataset struct {
	seq         int64
	companies   map[string]entity.Company
	users       map[string]entity.User
	products    map[string]entity.Product
	movements   map[string]movementRow
	productions map[string]entity.ProductionOperation
	employees   map[string]entity.Employee
	categories  map[string]entity.Category
	units       map[string]entity.Unit
	expenses    map[string]entity.Expense
}

func newDataset() *dataset {
	return &dataset{
		companies:   make(map[string]entity.Company),
		users:       make(map[string]entity.User),
		products:    make(map[string]entity.Product),
		movements:   make(map[string]movementRow),
		productions: make(map[string]entity.ProductionOperation),
		employees:   make(map[string]entity.Employee),
		categories:  make(map[string]entity.Category),
		units:       make(map[string]entity.Unit),
		expenses:    make(map[string]entity.Expense),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *dataset) clone() *dataset {
	return &dataset{
		seq:         d.seq,
		companies:   cloneMap(d.companies),
		users:       cloneMap(d.users),
		products:    cloneMap(d.products),
		movements:   cloneMap(d.movements),
		productions: cloneMap(d.productions),
		employees:   cloneMap(d.employees),
		categories:  cloneMap(d.categories),
		units:       cloneMap(d.units),
		expenses:    cloneMap(d.expenses),
	}
}

// Store almacenamiento en memoria para desarrollo y tests (STORAGE=memory).
// Implementa los mismos puertos que el adaptador de PostgreSQL.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// view ejecuta fn sobre el dataset de la transacción si existe, o sobre el dataset
// confirmado tomando el lock.
type view struct {
	st *Store
	tx *dataset
}

func (v view) read(fn func(d *dataset) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.st.mu.Lock()
	defer v.st.mu.Unlock()
	return fn(v.st.data)
}

// write igual que read; fuera de transacción la escritura se confirma al volver.
func (v view) write(fn func(d *dataset) error) error {
	return v.read(fn)
}

// Repositorios sobre el dataset confirmado.
func (s *Store) Companies() *CompanyRepo      { return &CompanyRepo{view{st: s}} }
func (s *Store) Users() *UserRepo             { return &UserRepo{view{st: s}} }
func (s *Store) Products() *ProductRepo       { return &ProductRepo{view{st: s}} }
func (s *Store) Movements() *MovementRepo     { return &MovementRepo{view{st: s}} }
func (s *Store) Productions() *ProductionRepo { return &ProductionRepo{view{st: s}} }
func (s *Store) Employees() *EmployeeRepo     { return &EmployeeRepo{view{st: s}} }
func (s *Store) Categories() *CategoryRepo    { return &CategoryRepo{view{st: s}} }
func (s *Store) Units() *UnitRepo             { return &UnitRepo{view{st: s}} }
func (s *Store) Expenses() *ExpenseRepo       { return &ExpenseRepo{view{st: s}} }
func (s *Store) TxRunner() *TxRunner          { return &TxRunner{st: s} }

// TxRunner serializa las transacciones con el mutex del store y aplica copy-on-commit:
// fn trabaja sobre una copia que reemplaza al dataset solo si fn no devuelve error.
// fn no debe usar repositorios fuera de la transacción (el mutex no es reentrante).
type TxRunner struct {
	st *Store
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos appinv.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	work := r.st.data.clone()
	v := view{st: r.st, tx: work}
	repos := appinv.TxRepos{
		Products:   &ProductRepo{v},
		Movements:  &MovementRepo{v},
		Production: &ProductionRepo{v},
		Employees:  &EmployeeRepo{v},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	r.st.data = work
	return nil
}
