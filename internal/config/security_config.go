package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Public
	"health":  SecurityPublic,
	"uploads": SecurityPublic,

	// Bookings - Access Protected
	"bookings.list":             SecurityAccess,
	"bookings.create":           SecurityAccess,
	"bookings.get":              SecurityAccess,
	"bookings.update":           SecurityAccess,
	"bookings.delete":           SecurityAccess,
	"bookings.delivery":         SecurityAccess,
	"bookings.migrateStructure": SecurityAccess,

	// Payments - Access Protected
	"payments.party":   SecurityAccess,
	"payments.vehicle": SecurityAccess,

	// Ledger - Access Protected
	"ledger.booking": SecurityAccess,
	"ledger.report":  SecurityAccess,

	// Master data - Access Protected
	"parties.list":    SecurityAccess,
	"parties.create":  SecurityAccess,
	"parties.get":     SecurityAccess,
	"parties.update":  SecurityAccess,
	"parties.delete":  SecurityAccess,
	"vehicles.list":   SecurityAccess,
	"vehicles.create": SecurityAccess,
	"vehicles.get":    SecurityAccess,
	"vehicles.update": SecurityAccess,
	"vehicles.delete": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
