package booking

import (
	"crypto/rand"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"chequered/models"
)

const (
	referenceAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength      = 6
	maxReferenceAttempts = 5
)

// NewReferenceCode returns a short upper-case code for manual lookup at the gate.
func NewReferenceCode() (string, error) {
	var b strings.Builder
	b.Grow(referenceLength)
	limit := big.NewInt(int64(len(referenceAlphabet)))
	for i := 0; i < referenceLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(referenceAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeReference upper-cases and trims a typed reference code.
func NormalizeReference(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeVisitor validates visitor details for a party of pax and returns a cleaned copy.
func normalizeVisitor(details models.VisitorDetails, pax int) (models.VisitorDetails, error) {
	out := models.VisitorDetails{
		VisitorName:  strings.TrimSpace(details.VisitorName),
		VisitorEmail: NormalizeEmail(details.VisitorEmail),
	}
	if out.VisitorName == "" || out.VisitorEmail == "" {
		return out, ErrInvalidVisitor
	}
	if _, err := mail.ParseAddress(out.VisitorEmail); err != nil {
		return out, ErrInvalidVisitor
	}
	if len(details.AttendeeNames) != pax {
		return out, ErrAttendeeMismatch
	}
	out.AttendeeNames = make([]string, 0, pax)
	for _, name := range details.AttendeeNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return out, ErrAttendeeMismatch
		}
		out.AttendeeNames = append(out.AttendeeNames, name)
	}
	return out, nil
}

// holdGrace keeps a hold's key around past its expiry so a delayed or retried
// expiry task can still claim it.
const holdGrace = 24 * time.Hour
