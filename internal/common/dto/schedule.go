package dto

// ScheduleBlockRequest is the body of POST /schedule-blocks
type ScheduleBlockRequest struct {
	Date     string   `json:"date"`
	TimeSlot FlexTime `json:"time_slot"`
	Label    string   `json:"label,omitempty"`
}

// WeeklyAvailabilityRow is one template row, weekday 0 (Sunday) to 6
type WeeklyAvailabilityRow struct {
	Weekday         int      `json:"weekday"`
	StartTime       FlexTime `json:"start_time"`
	EndTime         FlexTime `json:"end_time"`
	AppointmentType string   `json:"appointment_type,omitempty"`
}

// WeeklyAvailabilityRequest is the body of POST /weekly-availability
type WeeklyAvailabilityRequest struct {
	Rows []WeeklyAvailabilityRow `json:"rows"`
}

// AvailabilityQuery binds GET /availability
type AvailabilityQuery struct {
	Date string `form:"date"`
	Type string `form:"type"`
}

// AvailabilityResponse lists the free slots of a day in HH:MM:SS
type AvailabilityResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}
