package weather

// Descriptor is a normalized weather result: a lowercased condition text and
// a temperature rounded to whole degrees Celsius. The zero value is the
// "unavailable" sentinel.
type Descriptor struct {
	Condition    string
	TemperatureC int
}

// Unavailable is returned whenever a lookup cannot produce a usable result.
var Unavailable = Descriptor{}

func (d Descriptor) IsUnavailable() bool {
	return d.Condition == ""
}

// conditionFromCode maps WMO weather interpretation codes (as used by
// Open-Meteo) to a short lowercased condition text.
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code == 1:
		return "mostly clear"
	case code == 2:
		return "partly cloudy"
	case code == 3:
		return "cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code == 95:
		return "thunderstorm"
	case code == 96 || code == 99:
		return "thunderstorm with hail"
	default:
		return "unknown"
	}
}
