package handlers

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"emanifest/internal/domain/models"

	"github.com/phpdave11/gofpdf"
)

// buildManifestSheetPDF renders the printable roster an agent hands to park
// officials at departure.
func buildManifestSheetPDF(m models.Manifest, passengers []models.Passenger) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Passenger Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PASSENGER MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Manifest Code : %s", safe(m.ManifestCode)),
		fmt.Sprintf("Route         : %s -> %s", safe(m.Origin), safe(m.Destination)),
		fmt.Sprintf("Plate Number  : %s", safe(m.PlateNumber)),
		fmt.Sprintf("Driver        : %s (%s)", safe(m.DriverName), safe(m.DriverPhone)),
		fmt.Sprintf("Capacity      : %d seats, %d registered", m.Capacity, len(passengers)),
		fmt.Sprintf("Status        : %s", lockLabel(m.IsLocked)),
		fmt.Sprintf("Created       : %s", m.CreatedAt.Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(15, 8, "Seat", "1", 0, "C", false, 0, "")
	pdf.CellFormat(65, 8, "Passenger", "1", 0, "L", false, 0, "")
	pdf.CellFormat(65, 8, "Next of Kin", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 8, "NOK Phone", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, p := range passengers {
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", p.SeatNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(65, 7, safe(p.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 7, safe(p.NextOfKin), "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, safe(p.NextOfKinPhone), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Generated %s. This manifest is an official trip record; passengers not listed here are not covered.",
		time.Now().Format("2006-01-02 15:04")), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("MANIFEST_%s.pdf", safeFilenamePart(m.ManifestCode))
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return strings.TrimSpace(s)
}

func lockLabel(locked bool) string {
	if locked {
		return "LOCKED"
	}
	return "OPEN"
}

func safeFilenamePart(s string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", `"`, "", "'", "")
	out := replacer.Replace(strings.TrimSpace(s))
	if out == "" {
		return "manifest"
	}
	return out
}
