package domain

import "time"

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusInTransit DeliveryStatus = "in-transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusReceived  DeliveryStatus = "received"
)

var DeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusInTransit,
	DeliveryStatusDelivered,
	DeliveryStatusReceived,
}

func (s DeliveryStatus) Valid() bool {
	for _, v := range DeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStatePartial   PaymentState = "partial"
	PaymentStateCompleted PaymentState = "completed"
)

var PaymentStates = []PaymentState{
	PaymentStatePending,
	PaymentStatePartial,
	PaymentStateCompleted,
}

func (s PaymentState) Valid() bool {
	for _, v := range PaymentStates {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "Cash"
	PaymentModeCheque       PaymentMode = "Cheque"
	PaymentModeBankTransfer PaymentMode = "Bank Transfer"
	PaymentModeUPI          PaymentMode = "UPI"
)

var PaymentModes = []PaymentMode{
	PaymentModeCash,
	PaymentModeCheque,
	PaymentModeBankTransfer,
	PaymentModeUPI,
}

func (m PaymentMode) Valid() bool {
	for _, v := range PaymentModes {
		if m == v {
			return true
		}
	}
	return false
}

// PartySnapshot is the party data copied onto a booking at entry time.
type PartySnapshot struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Contact   string `json:"contact,omitempty"`
	GSTNumber string `json:"gstNumber,omitempty"`
}

type VehicleSnapshot struct {
	VehicleNo    string `json:"vehicleNo"`
	OwnerName    string `json:"ownerName,omitempty"`
	OwnerContact string `json:"ownerContact,omitempty"`
	VehicleType  string `json:"vehicleType,omitempty"`
}

type Journey struct {
	FromLocation string `json:"fromLocation"`
	ToLocation   string `json:"toLocation"`
}

type Delivery struct {
	Status     DeliveryStatus `json:"status,omitempty"`
	Remarks    string         `json:"remarks,omitempty"`
	ProofImage string         `json:"proofImage,omitempty"` // storage key
}

type PaymentRecord struct {
	Amount      Amount      `json:"amount"`
	PaymentDate time.Time   `json:"paymentDate"`
	Mode        PaymentMode `json:"paymentMode"`
	BankName    string      `json:"bankName,omitempty"`
	Remarks     string      `json:"remarks,omitempty"`
}

// Charges is the party side of a booking. The trailing fields only exist on
// records written before the deal/advance structure and are kept so the
// structure migration can read them.
type Charges struct {
	DealAmount         Amount          `json:"dealAmount"`
	AdvancePaid        Amount          `json:"advancePaid"`
	VehicleCharges     Amount          `json:"vehicleCharges"`
	Commission         Amount          `json:"commission"`
	LocalCharges       Amount          `json:"localCharges"`
	Hamali             Amount          `json:"hamali"`
	TDS                Amount          `json:"tds"`
	STCharges          Amount          `json:"stCharges"`
	Other              Amount          `json:"other"`
	PendingAmount      Amount          `json:"pendingAmount"`
	SubTotal           Amount          `json:"subTotal"`
	PreviousAmount     Amount          `json:"previousAmount"`
	FinalPendingAmount Amount          `json:"finalPendingAmount"`
	PaymentHistory     []PaymentRecord `json:"paymentHistory"`

	VehicleCostParty Amount `json:"vehicleCostParty,omitzero"`
	OtherCharges     Amount `json:"otherCharges,omitzero"`
	TotalAmount      Amount `json:"totalAmount,omitzero"`
	PartyAdvance     Amount `json:"partyAdvance,omitzero"`
	PartyBalance     Amount `json:"partyBalance,omitzero"`
}

type VehiclePayment struct {
	ActualVehicleCost Amount          `json:"actualVehicleCost"`
	VehicleAdvance    Amount          `json:"vehicleAdvance"`
	VehicleBalance    Amount          `json:"vehicleBalance"`
	PaymentHistory    []PaymentRecord `json:"paymentHistory"`
}

type PaymentStatus struct {
	PartyPaymentStatus   PaymentState `json:"partyPaymentStatus,omitempty"`
	VehiclePaymentStatus PaymentState `json:"vehiclePaymentStatus,omitempty"`
}

type Booking struct {
	ID             int64           `json:"id"`
	BookingNo      string          `json:"bookingNo"`
	BookingDate    time.Time       `json:"bookingDate"`
	GSTIN          string          `json:"gstin,omitempty"`
	Party          PartySnapshot   `json:"party"`
	Vehicle        VehicleSnapshot `json:"vehicle"`
	Journey        Journey         `json:"journey"`
	Delivery       Delivery        `json:"delivery"`
	Charges        Charges         `json:"charges"`
	VehiclePayment VehiclePayment  `json:"vehiclePayment"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type BookingFilter struct {
	PartyName          string
	VehicleNo          string
	DeliveryStatus     DeliveryStatus
	PartyPaymentStatus PaymentState
	From               *time.Time
	To                 *time.Time
	Query              string
	SortBy             string
	Order              string
	Page               int32
	PageSize           int32 // 0 returns every match
}
