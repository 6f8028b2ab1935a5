package models

// Doctor represents a clinician profile attached to a DOCTOR-role user.
// Created when an admin promotes a user to the doctor role.
type Doctor struct {
	BaseModel
	UserID                   string `gorm:"size:36;uniqueIndex" json:"userId"`
	Specialty                string `gorm:"size:100" json:"specialty"`
	WorksWithHealthInsurance bool   `gorm:"default:false" json:"worksWithHealthInsurance"`

	// Relations
	User         User           `gorm:"foreignKey:UserID" json:"-"`
	WorkingHours []WorkingHours `gorm:"foreignKey:DoctorID" json:"workingHours,omitempty"`
	Appointments []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
}

// WorkingHours is a per-weekday open interval during which a doctor
// accepts appointments. DayOfWeek is 1=Monday..7=Sunday; start and end
// are "HH:MM" times of day with start <= end. At most one row exists
// per (doctor, weekday).
type WorkingHours struct {
	BaseModel
	DoctorID  string `gorm:"size:36;index:idx_doctor_day,unique" json:"doctorId"`
	DayOfWeek int    `gorm:"index:idx_doctor_day,unique" json:"dayOfWeek"`
	StartTime string `gorm:"size:5" json:"startTime"`
	EndTime   string `gorm:"size:5" json:"endTime"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
