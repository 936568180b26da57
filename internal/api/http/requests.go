package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/finance"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type paymentRequest struct {
	Amount      any    `json:"amount"`
	PaymentMode string `json:"paymentMode" validate:"max=30"`
	BankName    string `json:"bankName" validate:"max=100"`
	Remarks     string `json:"remarks" validate:"max=500"`
	PaymentDate string `json:"paymentDate"`
}

func (p paymentRequest) toInput() (finance.PaymentInput, error) {
	in := finance.PaymentInput{
		Amount:   p.Amount,
		Mode:     p.PaymentMode,
		BankName: p.BankName,
		Remarks:  p.Remarks,
	}
	if strings.TrimSpace(p.PaymentDate) != "" {
		date, err := parseDate(p.PaymentDate)
		if err != nil {
			return in, domain.ValidationError{Field: "paymentDate", Msg: "must be a date (YYYY-MM-DD or RFC 3339)"}
		}
		in.PaymentDate = date
	}
	return in, nil
}

type partyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Address   string `json:"address" validate:"max=500"`
	Contact   string `json:"contact" validate:"max=30"`
	GSTNumber string `json:"gstNumber" validate:"omitempty,len=15,alphanum"`
}

func (p partyRequest) toParty(id int64) *domain.Party {
	return &domain.Party{ID: id, Name: p.Name, Address: p.Address, Contact: p.Contact, GSTNumber: p.GSTNumber}
}

type vehicleRequest struct {
	VehicleNo    string `json:"vehicleNo" validate:"required,max=20"`
	OwnerName    string `json:"ownerName" validate:"max=200"`
	OwnerContact string `json:"ownerContact" validate:"max=30"`
	VehicleType  string `json:"vehicleType" validate:"max=50"`
}

func (v vehicleRequest) toVehicle(id int64) *domain.Vehicle {
	return &domain.Vehicle{ID: id, VehicleNo: v.VehicleNo, OwnerName: v.OwnerName, OwnerContact: v.OwnerContact, VehicleType: v.VehicleType}
}

type deliveryRequest struct {
	Status  *domain.DeliveryStatus `json:"status"`
	Remarks *string                `json:"remarks" validate:"omitempty,max=500"`
}

// decodeJSON decodes the body into dst and runs struct validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return domain.ValidationError{Field: "body", Msg: "request body must be a JSON object", Err: err}
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ValidationError{Msg: err.Error(), Err: err}
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return domain.ValidationError{Msg: "request is invalid", Problems: problems, Err: err}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
