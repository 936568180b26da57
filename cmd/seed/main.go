package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"freight-booking-backend/internal/config"
	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/logger"
	"freight-booking-backend/internal/repository/postgres"
	"freight-booking-backend/internal/service"
	"freight-booking-backend/internal/storage"

	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"
)

// SetupData is the seed file layout. Bookings refer to parties by name and
// vehicles by number.
type SetupData struct {
	Parties  []PartySeed   `yaml:"parties"`
	Vehicles []VehicleSeed `yaml:"vehicles"`
	Bookings []BookingSeed `yaml:"bookings"`
}

type PartySeed struct {
	Name      string `yaml:"name"`
	Address   string `yaml:"address"`
	Contact   string `yaml:"contact"`
	GSTNumber string `yaml:"gst_number"`
}

type VehicleSeed struct {
	VehicleNo    string `yaml:"vehicle_no"`
	OwnerName    string `yaml:"owner_name"`
	OwnerContact string `yaml:"owner_contact"`
	VehicleType  string `yaml:"vehicle_type"`
}

type BookingSeed struct {
	BookingNo         string `yaml:"booking_no"`
	BookingDate       string `yaml:"booking_date"`
	Party             string `yaml:"party"`
	Vehicle           string `yaml:"vehicle"`
	From              string `yaml:"from"`
	To                string `yaml:"to"`
	DealAmount        string `yaml:"deal_amount"`
	AdvancePaid       string `yaml:"advance_paid"`
	VehicleCharges    string `yaml:"vehicle_charges"`
	Commission        string `yaml:"commission"`
	Hamali            string `yaml:"hamali"`
	ActualVehicleCost string `yaml:"actual_vehicle_cost"`
	VehicleAdvance    string `yaml:"vehicle_advance"`
}

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	setupFile := flag.String("data", "config/seed.dev.yaml", "Path to seed data file")
	flag.Parse()

	cfg, err := config.Load(resolvePath(*configPath))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data, err := readSetupFile(resolvePath(*setupFile))
	if err != nil {
		log.Fatalf("Failed to read setup file: %v", err)
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	ctx := context.Background()
	store := postgres.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	fileStore, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize local storage: %v", err)
	}
	svc := seedServices{
		parties:  service.NewPartyService(store.PartyRepository),
		vehicles: service.NewVehicleService(store.VehicleRepository),
		bookings: service.NewBookingService(store.BookingRepository, store.PartyRepository, store.VehicleRepository,
			fileStore, storage.Config{UploadDir: cfg.Storage.UploadDir, BaseURL: cfg.Storage.BaseURL}),
	}

	if err := svc.populate(ctx, data); err != nil {
		log.Fatalf("Failed to populate data: %v", err)
	}
	log.Println("✅ Seed data successfully populated!")
}

type seedServices struct {
	parties  service.PartyService
	vehicles service.VehicleService
	bookings service.BookingService
}

func (s seedServices) populate(ctx context.Context, data *SetupData) error {
	partyIDs := map[string]int64{}
	for _, seed := range data.Parties {
		p := domain.Party{Name: seed.Name, Address: seed.Address, Contact: seed.Contact, GSTNumber: seed.GSTNumber}
		if err := s.parties.CreateParty(ctx, &p); err != nil {
			return fmt.Errorf("failed to create party %s: %w", seed.Name, err)
		}
		partyIDs[seed.Name] = p.ID
		log.Printf("✓ Party %q created with ID: %d", p.Name, p.ID)
	}

	vehicleIDs := map[string]int64{}
	for _, seed := range data.Vehicles {
		v := domain.Vehicle{VehicleNo: seed.VehicleNo, OwnerName: seed.OwnerName, OwnerContact: seed.OwnerContact, VehicleType: seed.VehicleType}
		if err := s.vehicles.CreateVehicle(ctx, &v); err != nil {
			return fmt.Errorf("failed to create vehicle %s: %w", seed.VehicleNo, err)
		}
		vehicleIDs[seed.VehicleNo] = v.ID
		log.Printf("✓ Vehicle %q created with ID: %d", v.VehicleNo, v.ID)
	}

	for _, seed := range data.Bookings {
		in, err := seed.input(partyIDs, vehicleIDs)
		if err != nil {
			return err
		}
		b, err := s.bookings.CreateBooking(ctx, in, nil)
		if domain.IsConflict(err) {
			log.Printf("  - Booking %s already exists, skipped", seed.BookingNo)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create booking %s: %w", seed.BookingNo, err)
		}
		log.Printf("✓ Booking %s created with ID: %d (final pending %s)", b.BookingNo, b.ID, b.Charges.FinalPendingAmount.StringFixed(2))
	}
	return nil
}

func (b BookingSeed) input(partyIDs, vehicleIDs map[string]int64) (service.BookingInput, error) {
	in := service.BookingInput{
		BookingNo: &b.BookingNo,
		Journey:   &domain.Journey{FromLocation: b.From, ToLocation: b.To},
		Charges: &domain.Charges{
			DealAmount:     domain.NewAmount(b.DealAmount),
			AdvancePaid:    domain.NewAmount(b.AdvancePaid),
			VehicleCharges: domain.NewAmount(b.VehicleCharges),
			Commission:     domain.NewAmount(b.Commission),
			Hamali:         domain.NewAmount(b.Hamali),
		},
		VehiclePayment: &domain.VehiclePayment{
			ActualVehicleCost: domain.NewAmount(b.ActualVehicleCost),
			VehicleAdvance:    domain.NewAmount(b.VehicleAdvance),
		},
	}
	if b.BookingDate != "" {
		date, err := time.Parse("2006-01-02", b.BookingDate)
		if err != nil {
			return in, fmt.Errorf("booking %s: invalid date %q", b.BookingNo, b.BookingDate)
		}
		in.BookingDate = &date
	}
	if id, ok := partyIDs[b.Party]; ok {
		in.PartyID = &id
	} else if b.Party != "" {
		in.Party = &domain.PartySnapshot{Name: b.Party}
	}
	if id, ok := vehicleIDs[b.Vehicle]; ok {
		in.VehicleID = &id
	} else if b.Vehicle != "" {
		in.Vehicle = &domain.VehicleSnapshot{VehicleNo: b.Vehicle}
	}
	return in, nil
}

func readSetupFile(filename string) (*SetupData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var setupData SetupData
	if err := yaml.Unmarshal(data, &setupData); err != nil {
		return nil, err
	}
	return &setupData, nil
}

// resolvePath tries the path as given and then relative to the project root.
func resolvePath(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	fullPath := filepath.Join(findProjectRoot(), path)
	if _, err := os.Stat(fullPath); err == nil {
		return fullPath
	}
	return path
}

func findProjectRoot() string {
	// Look for go.mod to identify project root
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "."
}
