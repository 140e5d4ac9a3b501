package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SlotType classifies a parking slot. The constant lists below are the
// single source of truth for every enumeration; values outside them never
// reach the service layer.
type SlotType string

const (
	SlotTypeCovered   SlotType = "covered"
	SlotTypeUncovered SlotType = "uncovered"
	SlotTypeVisitor   SlotType = "visitor"
)

func ParseSlotType(s string) (SlotType, error) {
	switch SlotType(s) {
	case SlotTypeCovered, SlotTypeUncovered, SlotTypeVisitor:
		return SlotType(s), nil
	}
	return "", fmt.Errorf("unknown slot type %q", s)
}

// SlotStatus decides whether a slot can accept new bookings at all.
type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusMaintenance SlotStatus = "maintenance"
	SlotStatusReserved    SlotStatus = "reserved"
)

func ParseSlotStatus(s string) (SlotStatus, error) {
	switch SlotStatus(s) {
	case SlotStatusAvailable, SlotStatusMaintenance, SlotStatusReserved:
		return SlotStatus(s), nil
	}
	return "", fmt.Errorf("unknown slot status %q", s)
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return BookingStatus(s), nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

type Role string

const (
	RoleResident Role = "resident"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleResident, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Slot struct {
	ID          uuid.UUID  `db:"id"`
	Number      string     `db:"number"`
	Type        SlotType   `db:"slot_type"`
	Status      SlotStatus `db:"status"`
	OwnerID     *uuid.UUID `db:"owner_id"`
	Description *string    `db:"description"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type Booking struct {
	ID        uuid.UUID     `db:"id"`
	UserID    uuid.UUID     `db:"user_id"`
	SlotID    uuid.UUID     `db:"slot_id"`
	StartTime time.Time     `db:"start_time"`
	EndTime   time.Time     `db:"end_time"`
	Status    BookingStatus `db:"status"`
	Notes     *string       `db:"notes"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// BookingWithSlot joins a booking row with the slot's display attributes.
type BookingWithSlot struct {
	Booking
	SlotNumber string   `db:"slot_number"`
	SlotType   SlotType `db:"slot_type"`
}

type Profile struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	UnitNumber string    `db:"unit_number"`
	Role       Role      `db:"role"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
