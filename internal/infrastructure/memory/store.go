// Package memory implementa los repositorios sobre mapas en memoria protegidos por un mutex.
// Es el driver por defecto: los datos viven mientras dure el proceso.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

type row[T any] struct {
	seq int64
	v   T
}

// table guarda filas por clave compuesta empresa/id conservando el orden de inserción.
type table[T any] map[string]row[T]

func key(companyID, id string) string { return companyID + "/" + id }

func (t table[T]) clone(cp func(T) T) table[T] {
	out := make(table[T], len(t))
	for k, r := range t {
		out[k] = row[T]{seq: r.seq, v: cp(r.v)}
	}
	return out
}

// sorted devuelve los valores en orden de inserción que cumplen keep.
func (t table[T]) sorted(keep func(T) bool) []T {
	rows := make([]row[T], 0, len(t))
	for _, r := range t {
		if keep(r.v) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.v)
	}
	return out
}

type data struct {
	seq           int64
	products      table[*entity.Product]
	orders        table[*entity.Order]
	supplyOrders  table[*entity.SupplyOrder]
	customers     table[*entity.Customer]
	channels      table[entity.ChannelConfig]
	companies     table[*entity.Company]
	notifications table[*entity.Notification]
}

func newData() *data {
	return &data{
		products:      table[*entity.Product]{},
		orders:        table[*entity.Order]{},
		supplyOrders:  table[*entity.SupplyOrder]{},
		customers:     table[*entity.Customer]{},
		channels:      table[entity.ChannelConfig]{},
		companies:     table[*entity.Company]{},
		notifications: table[*entity.Notification]{},
	}
}

func (d *data) next() int64 {
	d.seq++
	return d.seq
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	cp := *c
	cp.ContactMethods = append([]string(nil), c.ContactMethods...)
	if c.LastOrderDate != nil {
		t := *c.LastOrderDate
		cp.LastOrderDate = &t
	}
	return &cp
}

func cloneNotification(n *entity.Notification) *entity.Notification {
	cp := *n
	cp.TargetRoles = append([]string(nil), n.TargetRoles...)
	return &cp
}

func (d *data) clone() *data {
	return &data{
		seq:           d.seq,
		products:      d.products.clone((*entity.Product).Clone),
		orders:        d.orders.clone((*entity.Order).Clone),
		supplyOrders:  d.supplyOrders.clone((*entity.SupplyOrder).Clone),
		customers:     d.customers.clone(cloneCustomer),
		channels:      d.channels.clone(func(c entity.ChannelConfig) entity.ChannelConfig { return c }),
		companies:     d.companies.clone((*entity.Company).Clone),
		notifications: d.notifications.clone(cloneNotification),
	}
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

// guard toma el mutex salvo que el repositorio esté atado a una transacción (que ya lo tiene).
func (s *Store) guard(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Repos repositorios sin transacción sobre el store.
type Repos struct {
	Products      *ProductRepo
	Orders        *OrderRepo
	SupplyOrders  *SupplyOrderRepo
	Customers     *CustomerRepo
	Channels      *ChannelRepo
	Companies     *CompanyRepo
	Notifications *NotificationRepo
}

// Repos construye los repositorios de uso general.
func (s *Store) Repos() Repos {
	return Repos{
		Products:      &ProductRepo{s: s},
		Orders:        &OrderRepo{s: s},
		SupplyOrders:  &SupplyOrderRepo{s: s},
		Customers:     &CustomerRepo{s: s},
		Channels:      &ChannelRepo{s: s},
		Companies:     &CompanyRepo{s: s},
		Notifications: &NotificationRepo{s: s},
	}
}
