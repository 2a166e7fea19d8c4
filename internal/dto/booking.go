package dto

import (
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePackageRequest is one package line of a new booking.
type CreatePackageRequest struct {
	PackageTypeCode string           `json:"packageTypeCode" binding:"required,max=32"`
	Quantity        *int             `json:"quantity" binding:"omitempty,min=1"`
	PickupCharge    *decimal.Decimal `json:"pickupCharge"`
	DropCharge      *decimal.Decimal `json:"dropCharge"`
	HandlingCharge  *decimal.Decimal `json:"handlingCharge"`
	Description     string           `json:"description" binding:"max=500"`
}

// CreateBookingRequest defines the payload for creating a booking.
// BookingNumber and LLRNumber are generated when omitted.
type CreateBookingRequest struct {
	BookingNumber         string                 `json:"bookingNumber" binding:"omitempty,max=32"`
	LLRNumber             string                 `json:"llrNumber" binding:"omitempty,max=32"`
	ReferenceNumber       string                 `json:"referenceNumber" binding:"max=64"`
	BookingDate           Date                   `json:"bookingDate" binding:"required"`
	ExpectedDeliveryDate  *Date                  `json:"expectedDeliveryDate"`
	CustomerCode          string                 `json:"customerCode" binding:"required,max=32"`
	OriginCenterCode      string                 `json:"originCenterCode" binding:"required,max=32"`
	DestinationCenterCode string                 `json:"destinationCenterCode" binding:"required,max=32"`
	PickupLocationCode    string                 `json:"pickupLocationCode" binding:"max=32"`
	DropLocationCode      string                 `json:"dropLocationCode" binding:"max=32"`
	SenderName            string                 `json:"senderName" binding:"required,max=255"`
	SenderPhone           string                 `json:"senderPhone" binding:"max=20"`
	ReceiverName          string                 `json:"receiverName" binding:"required,max=255"`
	ReceiverPhone         string                 `json:"receiverPhone" binding:"max=20"`
	SpecialInstructions   string                 `json:"specialInstructions" binding:"max=1000"`
	Packages              []CreatePackageRequest `json:"packages" binding:"omitempty,dive"`
	PaidAmount            *decimal.Decimal       `json:"paidAmount"`
	PaymentMode           string                 `json:"paymentMode" binding:"omitempty,oneof=cash card upi bank_transfer cheque"`
}

// AddBookingPaymentRequest defines the payload for collecting a payment against a booking.
type AddBookingPaymentRequest struct {
	Amount                decimal.Decimal `json:"amount"`
	PaymentMode           string          `json:"paymentMode" binding:"required,oneof=cash card upi bank_transfer cheque"`
	PaymentDate           *Date           `json:"paymentDate"`
	CustomerCode          string          `json:"customerCode" binding:"max=32"`
	Description           string          `json:"description" binding:"max=500"`
	CollectedBy           string          `json:"collectedBy" binding:"max=255"`
	CollectedAtCenterCode string          `json:"collectedAtCenterCode" binding:"max=32"`
}

// UpdateBookingRequest defines the payload for updating descriptive booking fields.
// Ledger and delivery fields are not editable here.
type UpdateBookingRequest struct {
	LLRNumber            *string `json:"llrNumber" binding:"omitempty,min=1,max=32"`
	ReferenceNumber      *string `json:"referenceNumber" binding:"omitempty,max=64"`
	BookingDate          *Date   `json:"bookingDate"`
	ExpectedDeliveryDate *Date   `json:"expectedDeliveryDate"`
	PickupLocationCode   *string `json:"pickupLocationCode" binding:"omitempty,max=32"`
	DropLocationCode     *string `json:"dropLocationCode" binding:"omitempty,max=32"`
	SenderName           *string `json:"senderName" binding:"omitempty,min=1,max=255"`
	SenderPhone          *string `json:"senderPhone" binding:"omitempty,max=20"`
	ReceiverName         *string `json:"receiverName" binding:"omitempty,min=1,max=255"`
	ReceiverPhone        *string `json:"receiverPhone" binding:"omitempty,max=20"`
	SpecialInstructions  *string `json:"specialInstructions" binding:"omitempty,max=1000"`
}

// UpdateDeliveryStatusRequest defines the payload for moving a booking along its delivery path.
type UpdateDeliveryStatusRequest struct {
	DeliveryStatus     string `json:"deliveryStatus" binding:"required"`
	ActualDeliveryDate *Date  `json:"actualDeliveryDate"`
}

// DeliveryStatusResponse acknowledges a delivery status change.
type DeliveryStatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListBookingsParams defines query parameters for listing bookings.
type ListBookingsParams struct {
	Limit           int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken       *string `form:"nextToken"`
	DeliveryStatus  string  `form:"deliveryStatus"`
	CustomerCode    string  `form:"customerCode"`
	IncludeInactive bool    `form:"includeInactive"`
}

// PackageResponse is a package line as returned by the API.
type PackageResponse struct {
	PackageID       string          `json:"packageID"`
	PackageTypeCode string          `json:"packageTypeCode"`
	Quantity        int             `json:"quantity"`
	PickupCharge    decimal.Decimal `json:"pickupCharge"`
	DropCharge      decimal.Decimal `json:"dropCharge"`
	HandlingCharge  decimal.Decimal `json:"handlingCharge"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
	Description     string          `json:"description"`
	IsActive        bool            `json:"isActive"`
}

// BookingPaymentResponse is a booking payment as returned by the API.
type BookingPaymentResponse struct {
	PaymentID             string          `json:"paymentID"`
	PaymentNumber         string          `json:"paymentNumber"`
	BookingNumber         string          `json:"bookingNumber"`
	CustomerCode          string          `json:"customerCode"`
	Amount                decimal.Decimal `json:"amount"`
	PaymentMode           string          `json:"paymentMode"`
	PaymentType           string          `json:"paymentType"`
	PaymentDate           Date            `json:"paymentDate"`
	Status                string          `json:"status"`
	Description           string          `json:"description"`
	CollectedBy           string          `json:"collectedBy"`
	CollectedAtCenterCode string          `json:"collectedAtCenterCode"`
	IsActive              bool            `json:"isActive"`
	CreatedAt             time.Time       `json:"createdAt"`
	CreatedBy             string          `json:"createdBy"`
}

// BookingResponse is a booking with its package lines and payments.
type BookingResponse struct {
	BookingID             string                   `json:"bookingID"`
	BookingNumber         string                   `json:"bookingNumber"`
	LLRNumber             string                   `json:"llrNumber"`
	ReferenceNumber       string                   `json:"referenceNumber"`
	BookingDate           Date                     `json:"bookingDate"`
	ExpectedDeliveryDate  *Date                    `json:"expectedDeliveryDate"`
	ActualDeliveryDate    *Date                    `json:"actualDeliveryDate"`
	CustomerCode          string                   `json:"customerCode"`
	OriginCenterCode      string                   `json:"originCenterCode"`
	DestinationCenterCode string                   `json:"destinationCenterCode"`
	PickupLocationCode    string                   `json:"pickupLocationCode"`
	DropLocationCode      string                   `json:"dropLocationCode"`
	SenderName            string                   `json:"senderName"`
	SenderPhone           string                   `json:"senderPhone"`
	ReceiverName          string                   `json:"receiverName"`
	ReceiverPhone         string                   `json:"receiverPhone"`
	SpecialInstructions   string                   `json:"specialInstructions"`
	TotalAmount           decimal.Decimal          `json:"totalAmount"`
	PaidAmount            decimal.Decimal          `json:"paidAmount"`
	DueAmount             decimal.Decimal          `json:"dueAmount"`
	PaymentStatus         string                   `json:"paymentStatus"`
	PaymentMode           string                   `json:"paymentMode"`
	DeliveryStatus        string                   `json:"deliveryStatus"`
	IsActive              bool                     `json:"isActive"`
	CreatedAt             time.Time                `json:"createdAt"`
	CreatedBy             string                   `json:"createdBy"`
	LastUpdatedAt         time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy         string                   `json:"lastUpdatedBy"`
	Packages              []PackageResponse        `json:"packages"`
	Payments              []BookingPaymentResponse `json:"payments"`
}

// ListBookingsResponse wraps a page of bookings.
type ListBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToPackageResponse converts a domain.PackageLine to PackageResponse DTO.
func ToPackageResponse(p domain.PackageLine) PackageResponse {
	return PackageResponse{
		PackageID:       p.PackageID,
		PackageTypeCode: p.PackageTypeCode,
		Quantity:        p.Quantity,
		PickupCharge:    p.PickupCharge,
		DropCharge:      p.DropCharge,
		HandlingCharge:  p.HandlingCharge,
		LineTotal:       p.LineTotal,
		Description:     p.Description,
		IsActive:        p.IsActive,
	}
}

// ToBookingPaymentResponse converts a domain.BookingPayment to BookingPaymentResponse DTO.
func ToBookingPaymentResponse(p domain.BookingPayment) BookingPaymentResponse {
	return BookingPaymentResponse{
		PaymentID:             p.PaymentID,
		PaymentNumber:         p.PaymentNumber,
		BookingNumber:         p.BookingNumber,
		CustomerCode:          p.CustomerCode,
		Amount:                p.Amount,
		PaymentMode:           string(p.PaymentMode),
		PaymentType:           string(p.PaymentType),
		PaymentDate:           NewDate(p.PaymentDate),
		Status:                p.Status,
		Description:           p.Description,
		CollectedBy:           p.CollectedBy,
		CollectedAtCenterCode: p.CollectedAtCenterCode,
		IsActive:              p.IsActive,
		CreatedAt:             p.CreatedAt,
		CreatedBy:             p.CreatedBy,
	}
}

// ToBookingResponse converts a domain.Booking to BookingResponse DTO.
func ToBookingResponse(b *domain.Booking) BookingResponse {
	packages := make([]PackageResponse, len(b.Packages))
	for i, p := range b.Packages {
		packages[i] = ToPackageResponse(p)
	}
	payments := make([]BookingPaymentResponse, len(b.Payments))
	for i, p := range b.Payments {
		payments[i] = ToBookingPaymentResponse(p)
	}
	return BookingResponse{
		BookingID:             b.BookingID,
		BookingNumber:         b.BookingNumber,
		LLRNumber:             b.LLRNumber,
		ReferenceNumber:       b.ReferenceNumber,
		BookingDate:           NewDate(b.BookingDate),
		ExpectedDeliveryDate:  NewDatePtr(b.ExpectedDeliveryDate),
		ActualDeliveryDate:    NewDatePtr(b.ActualDeliveryDate),
		CustomerCode:          b.CustomerCode,
		OriginCenterCode:      b.OriginCenterCode,
		DestinationCenterCode: b.DestinationCenterCode,
		PickupLocationCode:    b.PickupLocationCode,
		DropLocationCode:      b.DropLocationCode,
		SenderName:            b.SenderName,
		SenderPhone:           b.SenderPhone,
		ReceiverName:          b.ReceiverName,
		ReceiverPhone:         b.ReceiverPhone,
		SpecialInstructions:   b.SpecialInstructions,
		TotalAmount:           b.TotalAmount,
		PaidAmount:            b.PaidAmount,
		DueAmount:             b.DueAmount,
		PaymentStatus:         string(b.PaymentStatus),
		PaymentMode:           string(b.PaymentMode),
		DeliveryStatus:        string(b.DeliveryStatus),
		IsActive:              b.IsActive,
		CreatedAt:             b.CreatedAt,
		CreatedBy:             b.CreatedBy,
		LastUpdatedAt:         b.LastUpdatedAt,
		LastUpdatedBy:         b.LastUpdatedBy,
		Packages:              packages,
		Payments:              payments,
	}
}

// ToListBookingsResponse converts a page of bookings to ListBookingsResponse DTO.
func ToListBookingsResponse(bookings []domain.Booking, nextToken *string) ListBookingsResponse {
	list := make([]BookingResponse, len(bookings))
	for i := range bookings {
		list[i] = ToBookingResponse(&bookings[i])
	}
	return ListBookingsResponse{Bookings: list, NextToken: nextToken}
}
