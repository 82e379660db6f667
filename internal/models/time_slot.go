package models

// TimeSlot is a wall-clock interval such as 09:00-09:30. Doctors keep an
// ordered list of them as templates; appointments copy one.
type TimeSlot struct {
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
}
