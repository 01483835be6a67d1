package repository

import (
	bookingRepo "chequered/database/repository/booking"
	experienceRepo "chequered/database/repository/experience"
	scheduleRepo "chequered/database/repository/schedule"
	slotRepo "chequered/database/repository/slot"
)

// Re-export the repository interfaces and constructors.
type ExperienceRepository = experienceRepo.ExperienceRepository

var NewMongoExperienceRepo = experienceRepo.NewMongoExperienceRepo

var NewCachedExperienceRepo = experienceRepo.NewCachedExperienceRepo

type ScheduleRepository = scheduleRepo.ScheduleRepository

var NewMongoScheduleRepo = scheduleRepo.NewMongoScheduleRepo

type SlotRepository = slotRepo.SlotRepository

var NewMongoSlotRepo = slotRepo.NewMongoSlotRepo

type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo
