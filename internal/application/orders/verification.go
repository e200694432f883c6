package orders

import (
	"sync"
	"time"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/fulfillment"
)

// Sessions registro en proceso de las verificaciones de despacho, por empresa y pedido.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*fulfillment.Session
}

// NewSessions crea un registro vacío.
func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]*fulfillment.Session)}
}

func sessionKey(companyID, orderID string) string {
	return companyID + "/" + orderID
}

// Start inicia o reinicia la sesión con conteos en cero.
func (s *Sessions) Start(o *entity.Order, now time.Time) dto.VerificationResponse {
	sess := fulfillment.NewSession(o, now)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sessionKey(o.CompanyID, o.ID)] = sess
	return toVerification(sess)
}

// Get devuelve el estado de la sesión activa.
func (s *Sessions) Get(companyID, orderID string) (dto.VerificationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[sessionKey(companyID, orderID)]
	if !ok {
		return dto.VerificationResponse{}, domain.ErrVerificationNotActive
	}
	return toVerification(sess), nil
}

// Scan registra una lectura en la sesión activa. El estado devuelto refleja los conteos tras la lectura.
func (s *Sessions) Scan(companyID, orderID, payload string) (string, dto.VerificationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[sessionKey(companyID, orderID)]
	if !ok {
		return "", dto.VerificationResponse{}, domain.ErrVerificationNotActive
	}
	productID, err := sess.Scan(payload)
	return productID, toVerification(sess), err
}

// Take retira la sesión del registro para confirmarla.
func (s *Sessions) Take(companyID, orderID string) (*fulfillment.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := sessionKey(companyID, orderID)
	sess, ok := s.byID[k]
	if ok {
		delete(s.byID, k)
	}
	return sess, ok
}

// Put devuelve una sesión al registro (confirmación rechazada o fallida).
func (s *Sessions) Put(sess *fulfillment.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := sessionKey(sess.CompanyID, sess.OrderID)
	if _, exists := s.byID[k]; !exists {
		s.byID[k] = sess
	}
}

// Cancel descarta la sesión. Devuelve false si no había una activa.
func (s *Sessions) Cancel(companyID, orderID string) bool {
	_, ok := s.Take(companyID, orderID)
	return ok
}

func toVerification(sess *fulfillment.Session) dto.VerificationResponse {
	p := sess.Progress()
	items := sess.Items()
	out := dto.VerificationResponse{
		OrderID:   sess.OrderID,
		StartedAt: sess.StartedAt,
		Scanned:   p.Scanned,
		Required:  p.Required,
		Percent:   p.Percent,
		Complete:  p.Complete,
		Items:     make([]dto.VerificationItem, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.VerificationItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Scanned:     it.Scanned,
			Required:    it.Required,
			Complete:    it.Complete,
		})
	}
	return out
}
