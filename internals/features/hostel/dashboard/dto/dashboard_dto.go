package dto

import (
	paymentDTO "hostelhub_backend/internals/features/finance/payments/dto"
	residentDTO "hostelhub_backend/internals/features/hostel/residents/dto"
	roomDTO "hostelhub_backend/internals/features/hostel/rooms/dto"
)

type DashboardStats struct {
	Rooms     roomDTO.RoomStats         `json:"rooms"`
	Residents residentDTO.ResidentStats `json:"residents"`
	Payments  paymentDTO.PaymentStats   `json:"payments"`
}
