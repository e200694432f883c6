// Package fulfillment contiene la verificación de despacho por escaneo QR.
package fulfillment

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// Session sesión de verificación de un pedido antes de marcarlo Enviado.
// Los conteos se agregan por producto: todas las variantes (talla/color) de un mismo producto suman.
type Session struct {
	CompanyID string
	OrderID   string
	StartedAt time.Time

	required map[string]int
	scanned  map[string]int
	order    []string // productos en orden de aparición
	names    map[string]string
}

// Progress estado agregado de la sesión.
type Progress struct {
	Scanned  int
	Required int
	Percent  int
	Complete bool
}

// ItemProgress avance por producto.
type ItemProgress struct {
	ProductID   string
	ProductName string
	Scanned     int
	Required    int
	Complete    bool
}

// ScanPayload contenido de la etiqueta QR de un producto.
type ScanPayload struct {
	ID string `json:"id"`
}

// NewSession inicia una sesión con conteos en cero sobre una foto de las líneas del pedido.
func NewSession(o *entity.Order, now time.Time) *Session {
	s := &Session{
		CompanyID: o.CompanyID,
		OrderID:   o.ID,
		StartedAt: now,
		required:  make(map[string]int),
		scanned:   make(map[string]int),
		names:     make(map[string]string),
	}
	for _, it := range o.Items {
		if _, ok := s.required[it.ProductID]; !ok {
			s.order = append(s.order, it.ProductID)
			s.names[it.ProductID] = it.ProductName
			s.scanned[it.ProductID] = 0
		}
		s.required[it.ProductID] += it.Quantity
	}
	return s
}

// ParsePayload decodifica el contenido del QR. Sin campo id no es un código válido.
func ParsePayload(raw string) (string, error) {
	var p ScanPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &p); err != nil {
		return "", domain.ErrInvalidScan
	}
	if strings.TrimSpace(p.ID) == "" {
		return "", domain.ErrInvalidScan
	}
	return p.ID, nil
}

// Scan registra una lectura. Un producto ajeno o ya completo no altera los conteos.
func (s *Session) Scan(raw string) (string, error) {
	productID, err := ParsePayload(raw)
	if err != nil {
		return "", err
	}
	req, ok := s.required[productID]
	if !ok {
		return productID, domain.ErrForeignProduct
	}
	if s.scanned[productID] >= req {
		return productID, domain.ErrItemAlreadyComplete
	}
	s.scanned[productID]++
	return productID, nil
}

// Progress porcentaje = min(100, round(escaneado/requerido×100)).
func (s *Session) Progress() Progress {
	var p Progress
	for id, req := range s.required {
		p.Required += req
		p.Scanned += s.scanned[id]
	}
	if p.Required > 0 {
		p.Percent = int(math.Round(float64(p.Scanned) / float64(p.Required) * 100))
	}
	if p.Percent > 100 {
		p.Percent = 100
	}
	p.Complete = p.Scanned >= p.Required
	return p
}

// Items avance por producto en el orden del pedido.
func (s *Session) Items() []ItemProgress {
	out := make([]ItemProgress, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, ItemProgress{
			ProductID:   id,
			ProductName: s.names[id],
			Scanned:     s.scanned[id],
			Required:    s.required[id],
			Complete:    s.scanned[id] >= s.required[id],
		})
	}
	return out
}
