package sales

import (
	"github.com/jhoicas/bookstore-api/internal/application/dto"
	"github.com/jhoicas/bookstore-api/internal/domain/entity"
)

// ToResponse convierte la entidad a DTO preservando el orden de las líneas.
func ToResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SaleResponse{
		ID:          s.ID,
		ClientID:    s.ClientID,
		Date:        s.Date,
		Total:       s.Total,
		SaleDetails: make([]dto.SaleDetailResponse, 0, len(s.Details)),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	for _, d := range s.Details {
		resp.SaleDetails = append(resp.SaleDetails, dto.SaleDetailResponse{
			ID:        d.ID,
			SaleID:    d.SaleID,
			BookID:    d.BookID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return resp
}

// ToResponseList convierte un listado; nunca devuelve nil.
func ToResponseList(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToResponse(s))
	}
	return out
}
