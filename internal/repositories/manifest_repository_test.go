package repositories

import "testing"

func TestComplianceStatusDerivation(t *testing.T) {
	cases := []struct {
		name     string
		override string
		locked   bool
		count    int
		capacity int
		want     string
	}{
		{"override wins", "flagged", true, 14, 14, "flagged"},
		{"locked and full", "", true, 14, 14, "compliant"},
		{"locked short", "", true, 9, 14, "partial"},
		{"still open", "", false, 14, 14, "open"},
		{"open and empty", "", false, 0, 14, "open"},
	}
	for _, tc := range cases {
		if got := complianceStatus(tc.override, tc.locked, tc.count, tc.capacity); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestManifestFilterNormalize(t *testing.T) {
	f := ManifestFilter{Page: -1, Limit: 500}
	f.normalize()
	if f.Page != 1 {
		t.Fatalf("page should clamp to 1, got %d", f.Page)
	}
	if f.Limit != 100 {
		t.Fatalf("limit should clamp to 100, got %d", f.Limit)
	}

	f = ManifestFilter{}
	f.normalize()
	if f.Limit != 10 {
		t.Fatalf("default limit should be 10, got %d", f.Limit)
	}
}
