package entities

// Zone is an ordinal hospital tier: 1 premium amenities, 2 mid, 3 essential
type Zone int

const (
	ZonePremium   Zone = 1
	ZoneMid       Zone = 2
	ZoneEssential Zone = 3
)

// Valid reports whether the zone is one of the three known tiers
func (z Zone) Valid() bool {
	return z >= ZonePremium && z <= ZoneEssential
}

// Label returns a human readable name for the zone
func (z Zone) Label() string {
	switch z {
	case ZonePremium:
		return "premium"
	case ZoneMid:
		return "mid"
	case ZoneEssential:
		return "essential"
	default:
		return "unknown"
	}
}

// Hospital represents a facility where the surgery can take place
type Hospital struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Zone              Zone     `json:"zone"`
	BasePrice         int64    `json:"base_price"`
	ConsumablesCost   int64    `json:"consumables_cost"`
	Facilities        []string `json:"facilities"`
	InsuranceAccepted bool     `json:"insurance_accepted"`
	Address           Address  `json:"address"`
	Location          Location `json:"location"`
}

// Address represents a physical address
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
