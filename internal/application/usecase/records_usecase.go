package usecase

import (
	"context"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// RecordsUseCase listados paginados de los registros cargados por ETL:
// donantes, donaciones y solicitudes hospitalarias. Solo lectura; los
// registros entran únicamente por ingesta.
type RecordsUseCase struct {
	donorRepo    repository.DonorRepository
	donationRepo repository.DonationRepository
	requestRepo  repository.RequestRepository
}

// NewRecordsUseCase construye el caso de uso.
func NewRecordsUseCase(
	donorRepo repository.DonorRepository,
	donationRepo repository.DonationRepository,
	requestRepo repository.RequestRepository,
) *RecordsUseCase {
	return &RecordsUseCase{
		donorRepo:    donorRepo,
		donationRepo: donationRepo,
		requestRepo:  requestRepo,
	}
}

// ListDonors lista donantes con paginación.
func (uc *RecordsUseCase) ListDonors(ctx context.Context, page dto.PageRequest) (*dto.DonorListResponse, error) {
	page.DefaultPage()
	donors, err := uc.donorRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.donorRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DonorDTO, 0, len(donors))
	for _, d := range donors {
		items = append(items, dto.DonorDTO{
			DonorID:   d.ID,
			Name:      d.Name,
			DOB:       d.DOB.Format(normalize.DateLayout),
			BloodType: string(d.BloodType),
			Contact:   d.Contact,
		})
	}
	return &dto.DonorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListDonations lista donaciones, opcionalmente filtradas por tipo de sangre.
func (uc *RecordsUseCase) ListDonations(
	ctx context.Context,
	bloodType *blood.Type,
	page dto.PageRequest,
) (*dto.DonationListResponse, error) {
	page.DefaultPage()
	donations, err := uc.donationRepo.List(ctx, bloodType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.donationRepo.Count(ctx, bloodType)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DonationDTO, 0, len(donations))
	for _, d := range donations {
		items = append(items, dto.DonationDTO{
			DonationID:   d.ID,
			DonorID:      d.DonorID,
			BloodType:    string(d.BloodType),
			Component:    string(d.Component),
			DonationDate: d.DonationDate.Format(normalize.DateLayout),
			ExpiryDate:   d.ExpiryDate.Format(normalize.DateLayout),
			Units:        d.Units,
			QCPass:       d.QCPass,
		})
	}
	return &dto.DonationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListRequests lista solicitudes, filtrables por estado y urgencia.
func (uc *RecordsUseCase) ListRequests(
	ctx context.Context,
	status *blood.RequestStatus,
	urgency *blood.Urgency,
	page dto.PageRequest,
) (*dto.RequestListResponse, error) {
	page.DefaultPage()
	requests, err := uc.requestRepo.List(ctx, status, urgency, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.requestRepo.Count(ctx, status, urgency)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RequestDTO, 0, len(requests))
	for _, r := range requests {
		items = append(items, toRequestDTO(r))
	}
	return &dto.RequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toRequestDTO(r *entity.HospitalRequest) dto.RequestDTO {
	out := dto.RequestDTO{
		RequestID:      r.ID,
		Hospital:       r.Hospital,
		BloodType:      string(r.BloodType),
		Component:      string(r.Component),
		UnitsRequested: r.UnitsRequested,
		RequestDate:    r.RequestDate.Format(normalize.DateLayout),
		Urgency:        string(r.Urgency),
		Status:         string(r.Status),
	}
	if r.FulfilledDate != nil {
		out.FulfilledDate = r.FulfilledDate.Format(normalize.DateLayout)
	}
	return out
}
