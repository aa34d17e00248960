package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"emanifest/internal/domain"
	"emanifest/internal/domain/models"
	"emanifest/internal/repositories"
	"emanifest/internal/utils"
)

// ManifestService covers the agent/admin manifest surface: creation, lock
// (finalization), detail, listing and CSV export.
type ManifestService struct {
	Manifests repositories.ManifestRepository
	Parks     repositories.ParkRepository
	Agents    repositories.AgentRepository
	RequestID string

	// Now is swapped in tests to pin the manifest code suffix.
	Now func() time.Time
}

type CreateManifestInput struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	PlateNumber string `json:"plateNumber"`
	DriverName  string `json:"driverName"`
	DriverPhone string `json:"driverPhone"`
	Capacity    int    `json:"capacity"`
	AgentID     int64  `json:"agentId"`
	ParkID      int64  `json:"parkId"`
}

func (in *CreateManifestInput) validate() error {
	in.Origin = strings.TrimSpace(in.Origin)
	in.Destination = strings.TrimSpace(in.Destination)
	in.PlateNumber = strings.TrimSpace(in.PlateNumber)
	in.DriverName = strings.TrimSpace(in.DriverName)
	in.DriverPhone = strings.TrimSpace(in.DriverPhone)

	switch {
	case len(in.Origin) < 2:
		return domain.ValidationError{Field: "origin", Msg: "origin must be at least 2 characters"}
	case len(in.Destination) < 2:
		return domain.ValidationError{Field: "destination", Msg: "destination must be at least 2 characters"}
	case len(in.PlateNumber) < 6:
		return domain.ValidationError{Field: "plateNumber", Msg: "plate number must be at least 6 characters"}
	case len(in.DriverName) < 2:
		return domain.ValidationError{Field: "driverName", Msg: "driver name must be at least 2 characters"}
	case len(in.DriverPhone) < 10:
		return domain.ValidationError{Field: "driverPhone", Msg: "driver phone must be at least 10 characters"}
	case in.Capacity < 4 || in.Capacity > 20:
		return domain.ValidationError{Field: "capacity", Msg: "capacity must be between 4 and 20"}
	case in.AgentID <= 0:
		return domain.ValidationError{Field: "agentId", Msg: "agent id is required"}
	case in.ParkID <= 0:
		return domain.ValidationError{Field: "parkId", Msg: "park id is required"}
	}
	return nil
}

func (s ManifestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates the journey setup, verifies the owning agent and park
// exist, and writes the manifest with a generated manifest code.
func (s ManifestService) Create(in CreateManifestInput) (models.Manifest, error) {
	if err := in.validate(); err != nil {
		return models.Manifest{}, err
	}

	park, err := s.Parks.GetByID(in.ParkID)
	if err != nil {
		return models.Manifest{}, err
	}
	if _, err := s.Agents.GetByID(in.AgentID); err != nil {
		return models.Manifest{}, err
	}

	m := models.Manifest{
		ManifestCode: buildManifestCode(in.Origin, in.Destination, park.Code, s.now()),
		Origin:       in.Origin,
		Destination:  in.Destination,
		PlateNumber:  in.PlateNumber,
		DriverName:   in.DriverName,
		DriverPhone:  in.DriverPhone,
		Capacity:     in.Capacity,
		AgentID:      in.AgentID,
		ParkID:       in.ParkID,
	}
	if err := s.Manifests.Create(&m); err != nil {
		return models.Manifest{}, err
	}

	utils.LogEvent(s.RequestID, "manifest", "created", "code="+m.ManifestCode)
	return m, nil
}

// buildManifestCode follows the NURTW-<ORIGIN>-<DEST>-<PARK>-<SEQ> convention.
// Uniqueness stays conventional: the millisecond suffix, not a constraint.
func buildManifestCode(origin, dest, parkCode string, now time.Time) string {
	clean := func(s string) string {
		s = strings.ToUpper(strings.TrimSpace(s))
		return strings.ReplaceAll(s, " ", "")
	}
	return fmt.Sprintf("NURTW-%s-%s-%s-%d",
		clean(origin), clean(dest), clean(parkCode), now.UnixMilli())
}

// Lock finalizes a manifest; locked manifests refuse all new passengers.
func (s ManifestService) Lock(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "manifest id is required"}
	}
	if err := s.Manifests.Lock(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "manifest", "locked", "manifest_id="+strconv.FormatInt(id, 10))
	return nil
}

func (s ManifestService) Get(id int64) (models.Manifest, error) {
	if id <= 0 {
		return models.Manifest{}, domain.ValidationError{Field: "id", Msg: "manifest id is required"}
	}
	return s.Manifests.GetByID(id)
}

func (s ManifestService) List(f repositories.ManifestFilter) ([]models.Manifest, int, error) {
	return s.Manifests.List(f)
}

// ExportCSV renders the filtered manifest listing as CSV records, header
// first. The export covers the whole filtered set, paging through the
// listing query until every matching row is in; truncating here would hand
// the admin a download that looks complete but isn't.
func (s ManifestService) ExportCSV(f repositories.ManifestFilter) ([][]string, error) {
	f.Page = 1
	f.Limit = 100

	records := [][]string{{
		"manifest_code", "origin", "destination", "plate_number",
		"driver_name", "capacity", "passengers", "locked", "created_at",
	}}
	for {
		rows, total, err := s.Manifests.List(f)
		if err != nil {
			return nil, err
		}
		for _, m := range rows {
			records = append(records, []string{
				m.ManifestCode,
				m.Origin,
				m.Destination,
				m.PlateNumber,
				m.DriverName,
				strconv.Itoa(m.Capacity),
				strconv.Itoa(m.PassengerCount),
				strconv.FormatBool(m.IsLocked),
				m.CreatedAt.Format(time.RFC3339),
			})
		}
		if len(records)-1 >= total || len(rows) == 0 {
			return records, nil
		}
		f.Page++
	}
}
