package checkin

import (
	"encoding/json"
	"strings"

	"chequered/models"
)

// ParseTicketCode reads a scanned QR payload ({"id","ref"}) or a typed reference code.
// At least one of the returned id and ref is non-empty on success.
func ParseTicketCode(raw string) (id, ref string, err error) {
	trimmed := strings.TrimSpace(raw)

	var payload models.TicketPayload
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal([]byte(trimmed), &payload) == nil {
		id = strings.TrimSpace(payload.ID)
		ref = strings.ToUpper(strings.TrimSpace(payload.Ref))
	} else {
		ref = strings.ToUpper(trimmed)
	}

	if id == "" && ref == "" {
		return "", "", ErrEmptyCode
	}
	return id, ref, nil
}
