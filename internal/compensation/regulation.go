package compensation

import "strings"

// Configuration keys accepted by RegulationByName
const (
	KeySHYYolcu = "SHY-YOLCU"
	KeyEU261    = "EU261"
)

// Regulation describes the passenger-rights regime an engine applies
type Regulation struct {
	// Key is the canonical configuration value
	Key  string
	Name string
	// DomesticTier enables the flat domestic-flight amount
	DomesticTier bool
	// CountryScoped regimes decide airport jurisdiction by country
	// membership instead of the domestic airport set.
	CountryScoped bool
}

var (
	SHYYolcu = Regulation{Key: KeySHYYolcu, Name: "SHY-YOLCU", DomesticTier: true}
	EU261    = Regulation{Key: KeyEU261, Name: "EU 261/2004", CountryScoped: true}
)

// RegulationByName returns the regulation for a configuration value,
// defaulting to SHY-YOLCU. Case, spaces and separators are ignored, so
// "eu261", "EU-261" and "EU 261/2004" all select EU261.
func RegulationByName(name string) Regulation {
	normalized := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToUpper(strings.TrimSpace(name)))
	switch normalized {
	case "EU261", "EU261/2004":
		return EU261
	default:
		return SHYYolcu
	}
}

// euCountryCodes lists countries where EU 261/2004 applies: the EU member
// states plus Iceland, Norway, Liechtenstein and Switzerland.
var euCountryCodes = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "HR": {}, "CY": {}, "CZ": {}, "DK": {},
	"EE": {}, "FI": {}, "FR": {}, "DE": {}, "GR": {}, "HU": {}, "IE": {},
	"IT": {}, "LV": {}, "LT": {}, "LU": {}, "MT": {}, "NL": {}, "PL": {},
	"PT": {}, "RO": {}, "SK": {}, "SI": {}, "ES": {}, "SE": {},
	"IS": {}, "NO": {}, "LI": {}, "CH": {},
}

// IsEUCountry reports whether EU 261/2004 covers airports in countryCode
func IsEUCountry(countryCode string) bool {
	_, ok := euCountryCodes[strings.ToUpper(strings.TrimSpace(countryCode))]
	return ok
}
