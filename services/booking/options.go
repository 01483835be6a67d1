package booking

import (
	"fmt"

	"chequered/models"
)

// BuildBookingOptions offers ways to seat a party of pax across slots, in order:
// the first slot that fits everyone, then a greedy split over the earliest slots.
// slots must be sorted by start time.
func BuildBookingOptions(slots []models.Slot, pax int) []models.SlotOption {
	if pax <= 0 {
		return nil
	}

	var future []models.Slot
	for _, s := range slots {
		if s.Bookable() && s.RemainingCapacity > 0 {
			future = append(future, s)
		}
	}

	options := []models.SlotOption{}
	hasTogether := false

	for _, s := range future {
		if s.RemainingCapacity >= pax {
			options = append(options, models.SlotOption{
				Type:        models.OptionTogether,
				Description: fmt.Sprintf("Next available slot for %d people together", pax),
				Slots:       []models.SlotAssignment{{Slot: s, PaxToAssign: pax}},
			})
			hasTogether = true
			break
		}
	}

	if len(future) == 0 {
		return options
	}

	var plan []models.SlotAssignment
	remaining := pax
	for i := 0; remaining > 0 && i < len(future); i++ {
		take := min(future[i].RemainingCapacity, remaining)
		if take > 0 {
			plan = append(plan, models.SlotAssignment{Slot: future[i], PaxToAssign: take})
			remaining -= take
		}
	}
	if remaining > 0 {
		return options
	}

	switch {
	case len(plan) > 1:
		options = append(options, models.SlotOption{
			Type:        models.OptionSplit,
			Description: fmt.Sprintf("Earliest start (Split into %d groups)", len(plan)),
			Slots:       plan,
		})
	case len(plan) == 1 && !hasTogether:
		options = append(options, models.SlotOption{
			Type:        models.OptionTogether,
			Description: "Next available slot",
			Slots:       plan,
		})
	}
	return options
}
