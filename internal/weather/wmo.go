package weather

// WMO interpretation codes as published by Open-Meteo.

var wmoGlyphs = map[int]string{
	0:  "☀️",
	1:  "🌤️",
	2:  "⛅",
	3:  "☁️",
	45: "🌫️",
	48: "🌫️",
	51: "🌦️",
	53: "🌦️",
	55: "🌧️",
	56: "🌨️",
	57: "🌨️",
	61: "🌧️",
	63: "🌧️",
	65: "🌧️",
	66: "🌨️",
	67: "🌨️",
	71: "❄️",
	73: "❄️",
	75: "❄️",
	77: "🌨️",
	80: "🌦️",
	81: "🌧️",
	82: "⛈️",
	85: "🌨️",
	86: "🌨️",
	95: "⛈️",
	96: "⛈️",
	99: "⛈️",
}

var wmoDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Icy fog",
	51: "Light drizzle",
	53: "Drizzle",
	55: "Heavy drizzle",
	61: "Light rain",
	63: "Rain",
	65: "Heavy rain",
	71: "Light snow",
	73: "Snow",
	75: "Heavy snow",
	80: "Rain showers",
	81: "Showers",
	82: "Violent showers",
	95: "Thunderstorm",
	96: "Thunderstorm+hail",
	99: "Thunderstorm+hail",
}

// Glyph returns the emoji for a WMO weather code.
func Glyph(code int) string {
	if g, ok := wmoGlyphs[code]; ok {
		return g
	}
	return "🌡️"
}

// Describe returns a short description for a WMO weather code.
func Describe(code int) string {
	if d, ok := wmoDescriptions[code]; ok {
		return d
	}
	return "Unknown"
}
