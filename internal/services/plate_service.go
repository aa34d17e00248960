package services

import (
	"strings"

	"emanifest/internal/domain"
	"emanifest/internal/domain/models"
	"emanifest/internal/repositories"
)

// PlateService resolves a plate number to its open manifest and previews the
// seat a new passenger would receive. The preview is read-only: the real
// assignment happens at registration time and may differ if someone else
// registers first.
type PlateService struct {
	Manifests repositories.ManifestRepository
}

func (s PlateService) ValidatePlate(plate string) (models.ManifestPreview, error) {
	plate = strings.TrimSpace(plate)
	if len(plate) < 6 {
		return models.ManifestPreview{}, domain.ValidationError{
			Field: "plateNumber", Msg: "plate number must be at least 6 characters",
		}
	}

	m, err := s.Manifests.FindOpenByPlate(plate)
	if err != nil {
		return models.ManifestPreview{}, err
	}

	if m.PassengerCount >= m.Capacity {
		return models.ManifestPreview{}, domain.ErrManifestFull()
	}

	taken, err := s.Manifests.TakenSeats(m.ID)
	if err != nil {
		return models.ManifestPreview{}, err
	}

	// Same ascending scan the allocator uses, so preview and assignment
	// agree whenever no one registers in between.
	next, err := domain.NextFreeSeat(m.Capacity, taken)
	if err != nil {
		return models.ManifestPreview{}, err
	}

	return models.ManifestPreview{
		ID:                m.ID,
		ManifestCode:      m.ManifestCode,
		Origin:            m.Origin,
		Destination:       m.Destination,
		DriverName:        m.DriverName,
		Capacity:          m.Capacity,
		CurrentPassengers: m.PassengerCount,
		NextSeatNumber:    next,
	}, nil
}
