package models

// Notification is an inbox entry for a user. Reminder notifications
// reference the appointment they were generated for; the unique index on
// (user, appointment) backs the sweep's at-most-one guarantee.
type Notification struct {
	BaseModel
	UserID        string  `gorm:"size:36;index:idx_user_appointment,unique" json:"userId"`
	AppointmentID *string `gorm:"size:36;index:idx_user_appointment,unique" json:"appointmentId,omitempty"` // nil for non-reminder events
	Message       string  `gorm:"type:text" json:"message"`
	Read          bool    `gorm:"column:is_read;default:false" json:"read"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
