package models

// AssistantDoctor is a delegation edge allowing an ASSISTANT-role user to
// act on a doctor's schedule. At most one edge per (assistant, doctor).
type AssistantDoctor struct {
	BaseModel
	AssistantID string `gorm:"size:36;index:idx_assistant_doctor,unique" json:"assistantId"`
	DoctorID    string `gorm:"size:36;index:idx_assistant_doctor,unique" json:"doctorId"`

	Assistant User   `gorm:"foreignKey:AssistantID" json:"-"`
	Doctor    Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
