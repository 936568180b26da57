package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/service"
	"freight-booking-backend/internal/storage"
)

const (
	proofField       = "proofImage"
	multipartMemory  = 8 << 20
	maxJSONBodyBytes = 2 << 20
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// rawFields holds the top level fields of a booking request. Values are kept
// as raw JSON; multipart form values are stored as JSON strings so both
// encodings resolve the same way.
type rawFields map[string]json.RawMessage

// bookingRequest is a decoded booking request. Close releases the uploaded
// proof file and any temporary multipart files.
type bookingRequest struct {
	Input  service.BookingInput
	Proof  *storage.Upload
	fields rawFields
	form   *multipart.Form
	file   multipart.File
}

func (b *bookingRequest) Close() {
	if b.file != nil {
		b.file.Close()
	}
	if b.form != nil {
		b.form.RemoveAll()
	}
}

// decodeBookingRequest reads a JSON or multipart booking request. Sub
// documents may be objects or JSON encoded strings; a sub document that does
// not parse becomes an empty object instead of failing the request.
func decodeBookingRequest(w http.ResponseWriter, r *http.Request, maxUpload int64) (*bookingRequest, error) {
	req := &bookingRequest{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if maxUpload > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartMemory)
		}
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, domain.ValidationError{Field: "body", Msg: fmt.Sprintf("invalid multipart form: %v", err), Err: err}
		}
		req.form = r.MultipartForm
		req.fields = formFields(r.MultipartForm)

		file, header, err := r.FormFile(proofField)
		switch {
		case err == nil:
			req.file = file
			req.Proof = &storage.Upload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Reader:      file,
			}
		case !errors.Is(err, http.ErrMissingFile):
			req.Close()
			return nil, domain.ValidationError{Field: proofField, Msg: err.Error(), Err: err}
		}
	default:
		fields, err := readJSONFields(w, r)
		if err != nil {
			return nil, err
		}
		req.fields = fields
	}

	in, err := req.fields.bookingInput()
	if err != nil {
		req.Close()
		return nil, err
	}
	req.Input = in
	return req, nil
}

func readJSONFields(w http.ResponseWriter, r *http.Request) (rawFields, error) {
	fields := rawFields{}
	body := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(&fields); err != nil {
		return nil, domain.ValidationError{Field: "body", Msg: "request body must be a JSON object", Err: err}
	}
	return fields, nil
}

func formFields(form *multipart.Form) rawFields {
	fields := rawFields{}
	for key, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		encoded, _ := json.Marshal(values[0])
		fields[key] = encoded
	}
	return fields
}

func (f rawFields) bookingInput() (service.BookingInput, error) {
	var in service.BookingInput

	in.BookingNo = f.str("bookingNo")
	in.GSTIN = f.str("gstin")

	if s := f.str("bookingDate"); s != nil && strings.TrimSpace(*s) != "" {
		date, err := parseDate(*s)
		if err != nil {
			return in, domain.ValidationError{Field: "bookingDate", Msg: "must be a date (YYYY-MM-DD or RFC 3339)"}
		}
		in.BookingDate = &date
	}

	var err error
	if in.PartyID, err = f.id("partyId"); err != nil {
		return in, err
	}
	if in.VehicleID, err = f.id("vehicleId"); err != nil {
		return in, err
	}

	in.Party = object[domain.PartySnapshot](f, "party")
	in.Vehicle = object[domain.VehicleSnapshot](f, "vehicle")
	in.Journey = object[domain.Journey](f, "journey")
	in.Delivery = object[domain.Delivery](f, "delivery")
	in.Charges = object[domain.Charges](f, "charges")
	in.VehiclePayment = object[domain.VehiclePayment](f, "vehiclePayment")
	in.PaymentStatus = object[domain.PaymentStatus](f, "paymentStatus")
	return in, nil
}

// str returns a scalar field as a string. Numbers are accepted as well.
func (f rawFields) str(key string) *string {
	raw, ok := f[key]
	if !ok || isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	s = strings.TrimSpace(string(raw))
	return &s
}

func (f rawFields) id(key string) (*int64, error) {
	s := f.str(key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.ValidationError{Field: key, Msg: "must be a positive integer"}
	}
	return &id, nil
}

// object resolves a sub document. It returns nil when the key is absent and
// an empty value when the document cannot be parsed.
func object[T any](f rawFields, key string) *T {
	raw, ok := f[key]
	if !ok || isNull(raw) {
		return nil
	}
	v := new(T)

	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return v
		}
		raw = []byte(strings.TrimSpace(encoded))
	}
	if len(raw) == 0 || raw[0] != '{' {
		return v
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return new(T)
	}
	return v
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
