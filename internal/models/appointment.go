package models

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
// BOOKED is the initial state, CANCELLED the only other (terminal) one.
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "BOOKED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// AppointmentType represents the kind of visit
type AppointmentType string

const (
	TypePrimary  AppointmentType = "PRIMARY"
	TypeFollowUp AppointmentType = "FOLLOW_UP"
)

// Appointment represents a booked 20-minute slot with a doctor.
// DateTime must land on a 20-minute boundary.
type Appointment struct {
	BaseModel
	DoctorID    string            `gorm:"size:36;index" json:"doctorId"`
	PatientID   string            `gorm:"size:36;index" json:"patientId"`
	DateTime    time.Time         `json:"dateTime"`
	Type        AppointmentType   `gorm:"size:20" json:"type"`
	PaymentType string            `gorm:"size:30" json:"paymentType"` // opaque label, e.g. PRIVATE / NHIF
	Status      AppointmentStatus `gorm:"size:20;default:'BOOKED'" json:"status"`

	// Relations
	Doctor  Doctor `gorm:"foreignKey:DoctorID" json:"-"`
	Patient User   `gorm:"foreignKey:PatientID" json:"-"`
}
