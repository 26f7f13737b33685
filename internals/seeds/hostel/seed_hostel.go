// Package hostel seeds demo rooms, residents and their payments.
package hostel

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	paymentDTO "hostelhub_backend/internals/features/finance/payments/dto"
	paymentService "hostelhub_backend/internals/features/finance/payments/service"
	residentDTO "hostelhub_backend/internals/features/hostel/residents/dto"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	roomDTO "hostelhub_backend/internals/features/hostel/rooms/dto"
	roomService "hostelhub_backend/internals/features/hostel/rooms/service"
)

var (
	//go:embed data_rooms.json
	roomsJSON []byte
	//go:embed data_residents.json
	residentsJSON []byte
	//go:embed data_payments.json
	paymentsJSON []byte
)

type ResidentSeed struct {
	RoomNumber string `json:"room_number"`
	residentDTO.CreateResidentRequest
}

type PaymentSeed struct {
	ResidentEmail string `json:"resident_email"`
	paymentDTO.CreatePaymentRequest
}

// SeedRooms creates the demo rooms and returns their ids keyed by room number.
func SeedRooms(ctx context.Context, s *roomService.RoomService, log *zap.Logger) (map[string]uuid.UUID, error) {
	var inputs []roomDTO.CreateRoomRequest
	if err := sonic.Unmarshal(roomsJSON, &inputs); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}

	ids := make(map[string]uuid.UUID, len(inputs))
	for _, in := range inputs {
		room, err := s.Create(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", in.RoomNumber, err)
		}
		ids[room.RoomNumber] = room.RoomID
	}
	log.Info("[SEED] rooms", zap.Int("count", len(ids)))
	return ids, nil
}

// SeedResidents admits residents through the service so room occupancy is
// counted. Returns ids keyed by resident email.
func SeedResidents(ctx context.Context, s *residentService.ResidentService, rooms map[string]uuid.UUID, log *zap.Logger) (map[string]uuid.UUID, error) {
	var inputs []ResidentSeed
	if err := sonic.Unmarshal(residentsJSON, &inputs); err != nil {
		return nil, fmt.Errorf("decode residents: %w", err)
	}

	ids := make(map[string]uuid.UUID, len(inputs))
	for _, in := range inputs {
		req := in.CreateResidentRequest
		if in.RoomNumber != "" {
			id, ok := rooms[in.RoomNumber]
			if !ok {
				return nil, fmt.Errorf("resident %s: unknown room %s", req.ResidentName, in.RoomNumber)
			}
			req.RoomID = &id
		}
		res, err := s.Create(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("resident %s: %w", req.ResidentName, err)
		}
		if res.ResidentEmail != nil {
			ids[*res.ResidentEmail] = res.ResidentID
		}
	}
	log.Info("[SEED] residents", zap.Int("count", len(ids)))
	return ids, nil
}

func SeedPayments(ctx context.Context, s *paymentService.PaymentService, residents map[string]uuid.UUID, log *zap.Logger) error {
	var inputs []PaymentSeed
	if err := sonic.Unmarshal(paymentsJSON, &inputs); err != nil {
		return fmt.Errorf("decode payments: %w", err)
	}

	for _, in := range inputs {
		rid, ok := residents[in.ResidentEmail]
		if !ok {
			return fmt.Errorf("payment %s: unknown resident %s", in.PaymentMonth, in.ResidentEmail)
		}
		req := in.CreatePaymentRequest
		req.ResidentID = rid
		if _, err := s.Create(ctx, req); err != nil {
			return fmt.Errorf("payment %s for %s: %w", in.PaymentMonth, in.ResidentEmail, err)
		}
	}
	log.Info("[SEED] payments", zap.Int("count", len(inputs)))
	return nil
}
