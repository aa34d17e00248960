package services

import (
	"strconv"
	"strings"

	"emanifest/internal/domain"
	"emanifest/internal/domain/models"
	"emanifest/internal/repositories"
	"emanifest/internal/utils"
)

// RegistrationService is the only mutating entry point for adding a
// passenger to a manifest. It composes the capacity guard, the seat
// allocator and a single atomic insert; the unique index breaks ties
// between concurrent registrations.
type RegistrationService struct {
	Manifests  repositories.ManifestRepository
	Passengers repositories.PassengerRepository
	RequestID  string
}

type RegisterPassengerInput struct {
	ManifestID     int64  `json:"manifestId"`
	Name           string `json:"name"`
	NextOfKin      string `json:"nextOfKin"`
	NextOfKinPhone string `json:"nextOfKinPhone"`
	SeatNumber     *int   `json:"seatNumber,omitempty"`
}

func (in *RegisterPassengerInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.NextOfKin = strings.TrimSpace(in.NextOfKin)
	in.NextOfKinPhone = strings.TrimSpace(in.NextOfKinPhone)

	if in.ManifestID <= 0 {
		return domain.ValidationError{Field: "manifestId", Msg: "manifest id is required"}
	}
	if len(in.Name) < 2 {
		return domain.ValidationError{Field: "name", Msg: "passenger name must be at least 2 characters"}
	}
	if len(in.NextOfKin) < 2 {
		return domain.ValidationError{Field: "nextOfKin", Msg: "next of kin name must be at least 2 characters"}
	}
	if len(in.NextOfKinPhone) < 10 || !isDigits(in.NextOfKinPhone) {
		return domain.ValidationError{Field: "nextOfKinPhone", Msg: "next of kin phone must be at least 10 digits"}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Register validates input, re-derives the authoritative seat assignment and
// performs exactly one durable insert. In-memory checks only fail fast; a
// losing racer surfaces the same seat conflict from the store. No automatic
// retry: a caller-requested seat must never silently become another seat.
func (s RegistrationService) Register(in RegisterPassengerInput) (models.Passenger, error) {
	if err := in.validate(); err != nil {
		return models.Passenger{}, err
	}

	manifest, err := s.Manifests.GetByID(in.ManifestID)
	if err != nil {
		return models.Passenger{}, err
	}

	if err := domain.CheckCapacity(manifest.IsLocked, manifest.PassengerCount, manifest.Capacity); err != nil {
		return models.Passenger{}, err
	}

	taken, err := s.Manifests.TakenSeats(manifest.ID)
	if err != nil {
		return models.Passenger{}, err
	}

	seat, err := domain.AssignSeat(manifest.Capacity, taken, in.SeatNumber)
	if err != nil {
		return models.Passenger{}, err
	}

	p := models.Passenger{
		ManifestID:     manifest.ID,
		Name:           in.Name,
		NextOfKin:      in.NextOfKin,
		NextOfKinPhone: in.NextOfKinPhone,
		SeatNumber:     seat,
	}
	if err := s.Passengers.Insert(&p); err != nil {
		return models.Passenger{}, err
	}

	utils.LogEvent(s.RequestID, "passenger", "registered",
		"manifest_id="+strconv.FormatInt(manifest.ID, 10)+" seat="+strconv.Itoa(seat))
	return p, nil
}

// BulkResult reports how far a bulk registration got before failing.
type BulkResult struct {
	Created []models.Passenger `json:"created"`
}

// RegisterBulk registers passengers one by one, each with a fresh
// taken-seat read. The first failure aborts and returns the passengers
// written so far; rows already inserted stay (append-only roster).
func (s RegistrationService) RegisterBulk(manifestID int64, inputs []RegisterPassengerInput) (BulkResult, error) {
	if manifestID <= 0 {
		return BulkResult{}, domain.ValidationError{Field: "manifestId", Msg: "manifest id is required"}
	}
	if len(inputs) == 0 {
		return BulkResult{}, domain.ValidationError{Field: "passengers", Msg: "at least one passenger is required"}
	}

	res := BulkResult{Created: []models.Passenger{}}
	for _, in := range inputs {
		in.ManifestID = manifestID
		p, err := s.Register(in)
		if err != nil {
			return res, err
		}
		res.Created = append(res.Created, p)
	}
	return res, nil
}

// ListPassengers returns the manifest's roster ordered by seat number.
func (s RegistrationService) ListPassengers(manifestID int64) ([]models.Passenger, error) {
	if manifestID <= 0 {
		return nil, domain.ValidationError{Field: "manifestId", Msg: "manifest id is required"}
	}
	if _, err := s.Manifests.GetByID(manifestID); err != nil {
		return nil, err
	}
	return s.Passengers.ListByManifest(manifestID)
}
