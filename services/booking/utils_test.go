package booking

import (
	"errors"
	"strings"
	"testing"

	"chequered/models"
)

func TestNewReferenceCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewReferenceCode()
		if err != nil {
			t.Fatalf("NewReferenceCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(referenceAlphabet, r) {
				t.Fatalf("code %q contains %q", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 45 {
		t.Fatalf("only %d distinct codes out of 50", len(seen))
	}
}

func TestNormalizeVisitor(t *testing.T) {
	got, err := normalizeVisitor(models.VisitorDetails{
		VisitorName:   "  Ada  ",
		VisitorEmail:  " Ada@Example.COM ",
		AttendeeNames: []string{" Ada ", "Charles"},
	}, 2)
	if err != nil {
		t.Fatalf("normalizeVisitor: %v", err)
	}
	if got.VisitorName != "Ada" || got.VisitorEmail != "ada@example.com" {
		t.Fatalf("got %+v", got)
	}
	if got.AttendeeNames[0] != "Ada" || got.AttendeeNames[1] != "Charles" {
		t.Fatalf("attendees = %v", got.AttendeeNames)
	}
}

func TestNormalizeVisitorRejects(t *testing.T) {
	tests := []struct {
		name    string
		details models.VisitorDetails
		pax     int
		want    error
	}{
		{"missing name", models.VisitorDetails{VisitorEmail: "a@b.co", AttendeeNames: []string{"A"}}, 1, ErrInvalidVisitor},
		{"bad email", models.VisitorDetails{VisitorName: "A", VisitorEmail: "not-an-email", AttendeeNames: []string{"A"}}, 1, ErrInvalidVisitor},
		{"too few attendees", models.VisitorDetails{VisitorName: "A", VisitorEmail: "a@b.co", AttendeeNames: []string{"A"}}, 2, ErrAttendeeMismatch},
		{"blank attendee", models.VisitorDetails{VisitorName: "A", VisitorEmail: "a@b.co", AttendeeNames: []string{"A", "  "}}, 2, ErrAttendeeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := normalizeVisitor(tt.details, tt.pax); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeReference(t *testing.T) {
	if got := NormalizeReference("  ab12cd "); got != "AB12CD" {
		t.Fatalf("NormalizeReference = %q", got)
	}
}
