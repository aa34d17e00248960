package services

import (
	"database/sql"
	"strings"

	intconfig "emanifest/internal/config"
	"emanifest/internal/domain"
	"emanifest/internal/domain/models"
	"emanifest/internal/repositories"
	"emanifest/internal/utils"
)

// ReportService backs the admin dashboard and compliance screens.
type ReportService struct {
	Manifests repositories.ManifestRepository
	DB        *sql.DB
	RequestID string
}

func (s ReportService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type DashboardStats struct {
	TotalManifests  int `json:"totalManifests"`
	TotalPassengers int `json:"totalPassengers"`
	TotalAgents     int `json:"totalAgents"`
	TotalParks      int `json:"totalParks"`
	OpenManifests   int `json:"openManifests"`
	LockedManifests int `json:"lockedManifests"`
	ManifestsToday  int `json:"manifestsToday"`
}

func (s ReportService) Dashboard() (DashboardStats, error) {
	var st DashboardStats
	db := s.db()

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM manifests`, &st.TotalManifests},
		{`SELECT COUNT(*) FROM passengers`, &st.TotalPassengers},
		{`SELECT COUNT(*) FROM agents`, &st.TotalAgents},
		{`SELECT COUNT(*) FROM parks`, &st.TotalParks},
		{`SELECT COUNT(*) FROM manifests WHERE is_locked = 0`, &st.OpenManifests},
		{`SELECT COUNT(*) FROM manifests WHERE is_locked = 1`, &st.LockedManifests},
		{`SELECT COUNT(*) FROM manifests WHERE DATE(created_at) = CURDATE()`, &st.ManifestsToday},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query).Scan(c.dest); err != nil {
			return DashboardStats{}, err
		}
	}
	return st, nil
}

func (s ReportService) Compliance(parkID int64, page, limit int) ([]models.ComplianceRow, int, error) {
	return s.Manifests.ComplianceRows(parkID, page, limit)
}

var complianceStatuses = map[string]bool{
	"compliant": true,
	"partial":   true,
	"flagged":   true,
	"open":      true,
}

// SetComplianceStatus records a manual review override on a manifest.
func (s ReportService) SetComplianceStatus(manifestID int64, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if manifestID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "manifest id is required"}
	}
	if !complianceStatuses[status] {
		return domain.ValidationError{Field: "status", Msg: "status must be one of compliant, partial, flagged, open"}
	}
	if err := s.Manifests.SetComplianceStatus(manifestID, status); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "compliance", "status_set", "status="+status)
	return nil
}
