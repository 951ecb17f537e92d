package schema

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentNoShow    AppointmentStatus = "NO_SHOW"
)

type Appointment struct {
	ID            string            `json:"id"`
	UserID        *string           `json:"userId"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Service       string            `json:"service"`
	Date          string            `json:"date"`
	TimeSlot      string            `json:"timeSlot"`
	Message       *string           `json:"message"`
	Status        AppointmentStatus `json:"status"`
	GoogleEventID *string           `json:"googleEventId"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// BookAppointmentRequest is posted to /user/appointments.
type BookAppointmentRequest struct {
	Service  string `json:"service"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Message  string `json:"message,omitempty"`
}

// AppointmentUpdate patches an appointment from the admin console.
type AppointmentUpdate struct {
	Status   *AppointmentStatus `json:"status,omitempty"`
	Date     *string            `json:"date,omitempty"`
	TimeSlot *string            `json:"timeSlot,omitempty"`
}
