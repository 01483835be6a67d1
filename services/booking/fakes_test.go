package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	bookingRepo "chequered/database/repository/booking"
	slotRepo "chequered/database/repository/slot"
	"chequered/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var errTransient = errors.New("transient mongo error")

var duplicateKey = mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}

type memExperiences struct {
	items map[string]models.Experience
}

func newMemExperiences(exps ...models.Experience) *memExperiences {
	m := &memExperiences{items: map[string]models.Experience{}}
	for _, e := range exps {
		m.items[e.ID] = e
	}
	return m
}

func (m *memExperiences) List(ctx context.Context) ([]models.Experience, error) {
	var out []models.Experience
	for _, e := range m.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memExperiences) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &e, nil
}

func (m *memExperiences) Upsert(ctx context.Context, exp *models.Experience) error {
	m.items[exp.ID] = *exp
	return nil
}

func (m *memExperiences) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.items, id)
	return nil
}

func (m *memExperiences) DeleteAll(ctx context.Context) error {
	m.items = map[string]models.Experience{}
	return nil
}

func (m *memExperiences) EnsureIndexes(ctx context.Context) error { return nil }

type memSchedules struct {
	items map[string]models.DaySchedule
}

func (m *memSchedules) GetByDate(ctx context.Context, date string) (*models.DaySchedule, error) {
	s, ok := m.items[date]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSchedules) ListRange(ctx context.Context, from, to string) ([]models.DaySchedule, error) {
	var out []models.DaySchedule
	for d, s := range m.items {
		if d >= from && d <= to {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSchedules) Save(ctx context.Context, s *models.DaySchedule) error {
	if m.items == nil {
		m.items = map[string]models.DaySchedule{}
	}
	m.items[s.Date] = *s
	return nil
}

func (m *memSchedules) DeleteAll(ctx context.Context) error {
	m.items = nil
	return nil
}

func (m *memSchedules) EnsureIndexes(ctx context.Context) error { return nil }

type memSlots struct {
	mu     sync.Mutex
	states map[string]*models.SlotState
	// releaseErrs fail that many ReleaseHold calls before succeeding.
	releaseErrs int
}

func newMemSlots() *memSlots {
	return &memSlots{states: map[string]*models.SlotState{}}
}

func (m *memSlots) state(slotID string) *models.SlotState {
	st, ok := m.states[slotID]
	if !ok {
		st = &models.SlotState{ID: slotID}
		m.states[slotID] = st
	}
	return st
}

func (m *memSlots) GetStates(ctx context.Context, experienceID, date string) (map[string]models.SlotState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]models.SlotState{}
	for id, st := range m.states {
		out[id] = *st
	}
	return out, nil
}

func (m *memSlots) GetState(ctx context.Context, slotID string) (*models.SlotState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[slotID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (m *memSlots) Reserve(ctx context.Context, slot models.Slot, pax int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(slot.ID)
	if st.Blocked || st.Booked+st.Held+pax > slot.MaxCapacity {
		return slotRepo.ErrSlotUnavailable
	}
	st.Held += pax
	return nil
}

func (m *memSlots) ReleaseHold(ctx context.Context, slotID string, pax int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.releaseErrs > 0 {
		m.releaseErrs--
		return errTransient
	}
	m.state(slotID).Held -= pax
	return nil
}

func (m *memSlots) SetBlocked(ctx context.Context, slot models.Slot, blocked bool, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(slot.ID)
	st.Blocked = blocked
	st.BlockReason = reason
	return nil
}

func (m *memSlots) DeleteAll(ctx context.Context) error {
	m.states = map[string]*models.SlotState{}
	return nil
}

func (m *memSlots) EnsureIndexes(ctx context.Context) error { return nil }

// memBookings mirrors the transactional repository on top of memSlots.
type memBookings struct {
	slots        *memSlots
	items        map[string]models.Booking
	dupFailures  int
	confirmCalls int
}

func newMemBookings(slots *memSlots) *memBookings {
	return &memBookings{slots: slots, items: map[string]models.Booking{}}
}

func (m *memBookings) ConfirmHeld(ctx context.Context, b *models.Booking) error {
	m.confirmCalls++
	if m.dupFailures > 0 {
		m.dupFailures--
		return duplicateKey
	}
	for _, existing := range m.items {
		if existing.ReferenceCode == b.ReferenceCode {
			return duplicateKey
		}
	}
	m.slots.mu.Lock()
	defer m.slots.mu.Unlock()
	st := m.slots.state(b.SlotID)
	if st.Held < b.Pax {
		return slotRepo.ErrSlotUnavailable
	}
	st.Held -= b.Pax
	st.Booked += b.Pax
	m.items[b.ID] = *b
	return nil
}

func (m *memBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &b, nil
}

func (m *memBookings) GetByReference(ctx context.Context, ref string) (*models.Booking, error) {
	for _, b := range m.items {
		if b.ReferenceCode == ref {
			return &b, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memBookings) list(keep func(models.Booking) bool) []models.Booking {
	var out []models.Booking
	for _, b := range m.items {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func active(b models.Booking) bool { return b.Status != models.BookingCancelled }

func (m *memBookings) ListActiveBySlot(ctx context.Context, slotID string) ([]models.Booking, error) {
	return m.list(func(b models.Booking) bool { return active(b) && b.SlotID == slotID }), nil
}

func (m *memBookings) ListActiveByExperienceDate(ctx context.Context, experienceID, date string) ([]models.Booking, error) {
	return m.list(func(b models.Booking) bool { return active(b) && b.ExperienceID == experienceID && b.Date == date }), nil
}

func (m *memBookings) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return m.list(func(b models.Booking) bool { return b.Date == date }), nil
}

func (m *memBookings) Cancel(ctx context.Context, id string, at time.Time) (*models.Booking, error) {
	b, ok := m.items[id]
	if !ok || b.Status != models.BookingConfirmed || b.CheckedIn {
		return nil, bookingRepo.ErrBookingConflict
	}
	b.Status = models.BookingCancelled
	b.CancelledAt = &at
	m.items[id] = b
	m.slots.mu.Lock()
	m.slots.state(b.SlotID).Booked -= b.Pax
	m.slots.mu.Unlock()
	return &b, nil
}

func (m *memBookings) CheckIn(ctx context.Context, id string, arrived []int, at time.Time) (*models.Booking, error) {
	b, ok := m.items[id]
	if !ok || b.Status != models.BookingConfirmed || b.CheckedIn || len(arrived) == 0 || len(arrived) > b.Pax {
		return nil, bookingRepo.ErrBookingConflict
	}
	released := b.Pax - len(arrived)
	b.OriginalPax = b.Pax
	b.Pax = len(arrived)
	b.Status = models.BookingCheckedIn
	b.CheckedIn = true
	b.ArrivedAttendees = arrived
	b.CheckedInAt = &at
	m.items[id] = b
	m.slots.mu.Lock()
	m.slots.state(b.SlotID).Booked -= released
	m.slots.mu.Unlock()
	return &b, nil
}

func (m *memBookings) DeleteAll(ctx context.Context) error {
	m.items = map[string]models.Booking{}
	return nil
}

func (m *memBookings) EnsureIndexes(ctx context.Context) error { return nil }

type memHolds struct {
	items map[string]models.Hold
}

func newMemHolds() *memHolds {
	return &memHolds{items: map[string]models.Hold{}}
}

func (m *memHolds) Save(ctx context.Context, hold models.Hold, ttl time.Duration) error {
	m.items[hold.ID] = hold
	return nil
}

func (m *memHolds) Get(ctx context.Context, holdID string) (*models.Hold, error) {
	h, ok := m.items[holdID]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (m *memHolds) Claim(ctx context.Context, holdID string) (*models.Hold, error) {
	h, ok := m.items[holdID]
	if !ok {
		return nil, nil
	}
	delete(m.items, holdID)
	return &h, nil
}

type recordingScheduler struct {
	scheduled []models.Hold
	err       error
}

func (r *recordingScheduler) ScheduleHoldExpiry(ctx context.Context, hold models.Hold) error {
	if r.err != nil {
		return r.err
	}
	r.scheduled = append(r.scheduled, hold)
	return nil
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

type fixture struct {
	svc       *DefaultBookingService
	slots     *memSlots
	bookings  *memBookings
	holds     *memHolds
	scheduler *recordingScheduler
	clock     *clock
}

// testDay is a date on which the fixture clock starts at 08:00 UTC.
const testDay = "2026-03-10"

func immersive() models.Experience {
	return models.Experience{
		ID:              "exp-immersive",
		Name:            "Immersive Experience",
		MaxCapacity:     4,
		DurationMinutes: 30,
		OffsetMinutes:   15,
		IsActive:        true,
		TimeIntervals:   []models.TimeInterval{{StartTime: "09:00", EndTime: "10:30"}},
	}
}

func newFixture(exps ...models.Experience) *fixture {
	if len(exps) == 0 {
		exps = []models.Experience{immersive()}
	}
	slots := newMemSlots()
	f := &fixture{
		slots:     slots,
		bookings:  newMemBookings(slots),
		holds:     newMemHolds(),
		scheduler: &recordingScheduler{},
		clock:     &clock{t: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)},
	}
	f.svc = &DefaultBookingService{
		Experiences:     newMemExperiences(exps...),
		Schedules:       &memSchedules{},
		Slots:           slots,
		Bookings:        f.bookings,
		Holds:           f.holds,
		Expiry:          f.scheduler,
		HoldTTL:         10 * time.Minute,
		LookaheadDays:   2,
		DefaultLocation: time.UTC,
		Now:             f.clock.Now,
	}
	return f
}

func visitor(names ...string) models.VisitorDetails {
	return models.VisitorDetails{
		VisitorName:   "Ada Lovelace",
		VisitorEmail:  "Ada@Example.com",
		AttendeeNames: names,
	}
}
