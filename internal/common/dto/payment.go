package dto

import "github.com/stemwithlyn/booking/internal/apiserver/database"

// FinalizePaymentRequest is the body of POST /api/finalize-payment-and-book
type FinalizePaymentRequest struct {
	TransactionID   string                   `json:"transactionId"`
	AppointmentData CreateAppointmentRequest `json:"appointmentData"`
}

// FinalizePaymentResponse reports the booked appointment. AlreadyProcessed marks a replay.
type FinalizePaymentResponse struct {
	Appointment      *database.Appointment `json:"appointment"`
	AlreadyProcessed bool                  `json:"alreadyProcessed"`
}
