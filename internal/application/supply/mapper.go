package supply

import (
	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// ToSupplyOrderResponse convierte la entidad a DTO.
func ToSupplyOrderResponse(s *entity.SupplyOrder) dto.SupplyOrderResponse {
	atts := make([]dto.SupplyAttachmentResponse, 0, len(s.Attachments))
	for _, a := range s.Attachments {
		atts = append(atts, toAttachmentResponse(a))
	}
	return dto.SupplyOrderResponse{
		ID:                  s.ID,
		Type:                s.Type,
		ProductID:           s.ProductID,
		ProductName:         s.ProductName,
		Quantity:            s.Quantity,
		CostPerUnit:         s.CostPerUnit,
		ShippingCost:        s.ShippingCost,
		InsuranceCost:       s.InsuranceCost,
		TotalCost:           s.TotalCost,
		SupplierOrFacility:  s.SupplierOrFacility,
		OrderDate:           s.OrderDate,
		ExpectedArrivalDate: s.ExpectedArrivalDate,
		Status:              s.Status,
		TrackingNumber:      s.TrackingNumber,
		Notes:               s.Notes,
		Attachments:         atts,
	}
}

func toAttachmentResponse(a entity.SupplyAttachment) dto.SupplyAttachmentResponse {
	out := dto.SupplyAttachmentResponse{
		ID:            a.ID,
		URL:           a.URL,
		Type:          a.Type,
		Date:          a.Date,
		Note:          a.Note,
		AnalysisEpoch: a.AnalysisEpoch,
	}
	if a.Quality != nil {
		out.AIAnalysis = &dto.QualityResultDTO{Status: a.Quality.Status, Reason: a.Quality.Reason}
	}
	return out
}
