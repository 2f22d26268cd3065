package airports

import "github.com/dalfonso89/flight-compensation-service/internal/models"

// builtinAirports is the reference table loaded at startup.
// Order matters: search results follow it.
var builtinAirports = []models.Airport{
	// Turkey
	{Code: "IST", Name: "Istanbul Airport", City: "Istanbul", Country: "Turkey", CountryCode: "TR", Latitude: 41.2753, Longitude: 28.7519},
	{Code: "SAW", Name: "Sabiha Gokcen International Airport", City: "Istanbul", Country: "Turkey", CountryCode: "TR", Latitude: 40.8986, Longitude: 29.3092},
	{Code: "ESB", Name: "Esenboga International Airport", City: "Ankara", Country: "Turkey", CountryCode: "TR", Latitude: 40.1281, Longitude: 32.9951},
	{Code: "ADB", Name: "Adnan Menderes Airport", City: "Izmir", Country: "Turkey", CountryCode: "TR", Latitude: 38.2924, Longitude: 27.1570},
	{Code: "AYT", Name: "Antalya Airport", City: "Antalya", Country: "Turkey", CountryCode: "TR", Latitude: 36.8987, Longitude: 30.8005},
	{Code: "DLM", Name: "Dalaman Airport", City: "Dalaman", Country: "Turkey", CountryCode: "TR", Latitude: 36.7131, Longitude: 28.7925},
	{Code: "BJV", Name: "Milas-Bodrum Airport", City: "Bodrum", Country: "Turkey", CountryCode: "TR", Latitude: 37.2506, Longitude: 27.6643},
	{Code: "ADA", Name: "Adana Sakirpasa Airport", City: "Adana", Country: "Turkey", CountryCode: "TR", Latitude: 36.9822, Longitude: 35.2804},
	{Code: "TZX", Name: "Trabzon Airport", City: "Trabzon", Country: "Turkey", CountryCode: "TR", Latitude: 40.9951, Longitude: 39.7897},
	{Code: "GZT", Name: "Gaziantep Oguzeli Airport", City: "Gaziantep", Country: "Turkey", CountryCode: "TR", Latitude: 36.9472, Longitude: 37.4787},
	{Code: "DIY", Name: "Diyarbakir Airport", City: "Diyarbakir", Country: "Turkey", CountryCode: "TR", Latitude: 37.8939, Longitude: 40.2010},
	{Code: "ERZ", Name: "Erzurum Airport", City: "Erzurum", Country: "Turkey", CountryCode: "TR", Latitude: 39.9565, Longitude: 41.1702},
	{Code: "KYA", Name: "Konya Airport", City: "Konya", Country: "Turkey", CountryCode: "TR", Latitude: 37.9790, Longitude: 32.5619},
	{Code: "VAN", Name: "Van Ferit Melen Airport", City: "Van", Country: "Turkey", CountryCode: "TR", Latitude: 38.4682, Longitude: 43.3323},
	{Code: "ASR", Name: "Kayseri Erkilet Airport", City: "Kayseri", Country: "Turkey", CountryCode: "TR", Latitude: 38.7704, Longitude: 35.4954},
	{Code: "SZF", Name: "Samsun Carsamba Airport", City: "Samsun", Country: "Turkey", CountryCode: "TR", Latitude: 41.2545, Longitude: 36.5671},

	// Europe
	{Code: "LHR", Name: "Heathrow Airport", City: "London", Country: "United Kingdom", CountryCode: "GB", Latitude: 51.4700, Longitude: -0.4543},
	{Code: "LGW", Name: "Gatwick Airport", City: "London", Country: "United Kingdom", CountryCode: "GB", Latitude: 51.1537, Longitude: -0.1821},
	{Code: "STN", Name: "Stansted Airport", City: "London", Country: "United Kingdom", CountryCode: "GB", Latitude: 51.8860, Longitude: 0.2389},
	{Code: "MAN", Name: "Manchester Airport", City: "Manchester", Country: "United Kingdom", CountryCode: "GB", Latitude: 53.3537, Longitude: -2.2750},
	{Code: "CDG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "France", CountryCode: "FR", Latitude: 49.0097, Longitude: 2.5479},
	{Code: "ORY", Name: "Orly Airport", City: "Paris", Country: "France", CountryCode: "FR", Latitude: 48.7262, Longitude: 2.3652},
	{Code: "FRA", Name: "Frankfurt Airport", City: "Frankfurt", Country: "Germany", CountryCode: "DE", Latitude: 50.0379, Longitude: 8.5622},
	{Code: "MUC", Name: "Munich Airport", City: "Munich", Country: "Germany", CountryCode: "DE", Latitude: 48.3538, Longitude: 11.7861},
	{Code: "BER", Name: "Berlin Brandenburg Airport", City: "Berlin", Country: "Germany", CountryCode: "DE", Latitude: 52.3667, Longitude: 13.5033},
	{Code: "AMS", Name: "Amsterdam Schiphol Airport", City: "Amsterdam", Country: "Netherlands", CountryCode: "NL", Latitude: 52.3105, Longitude: 4.7683},
	{Code: "MAD", Name: "Adolfo Suarez Madrid-Barajas Airport", City: "Madrid", Country: "Spain", CountryCode: "ES", Latitude: 40.4983, Longitude: -3.5676},
	{Code: "BCN", Name: "Barcelona El Prat Airport", City: "Barcelona", Country: "Spain", CountryCode: "ES", Latitude: 41.2974, Longitude: 2.0833},
	{Code: "FCO", Name: "Leonardo da Vinci Fiumicino Airport", City: "Rome", Country: "Italy", CountryCode: "IT", Latitude: 41.8003, Longitude: 12.2389},
	{Code: "MXP", Name: "Milan Malpensa Airport", City: "Milan", Country: "Italy", CountryCode: "IT", Latitude: 45.6306, Longitude: 8.7281},
	{Code: "ZRH", Name: "Zurich Airport", City: "Zurich", Country: "Switzerland", CountryCode: "CH", Latitude: 47.4582, Longitude: 8.5555},
	{Code: "VIE", Name: "Vienna International Airport", City: "Vienna", Country: "Austria", CountryCode: "AT", Latitude: 48.1103, Longitude: 16.5697},
	{Code: "BRU", Name: "Brussels Airport", City: "Brussels", Country: "Belgium", CountryCode: "BE", Latitude: 50.9010, Longitude: 4.4856},
	{Code: "CPH", Name: "Copenhagen Airport", City: "Copenhagen", Country: "Denmark", CountryCode: "DK", Latitude: 55.6180, Longitude: 12.6508},
	{Code: "ARN", Name: "Stockholm Arlanda Airport", City: "Stockholm", Country: "Sweden", CountryCode: "SE", Latitude: 59.6498, Longitude: 17.9238},
	{Code: "OSL", Name: "Oslo Gardermoen Airport", City: "Oslo", Country: "Norway", CountryCode: "NO", Latitude: 60.1976, Longitude: 11.1004},
	{Code: "HEL", Name: "Helsinki-Vantaa Airport", City: "Helsinki", Country: "Finland", CountryCode: "FI", Latitude: 60.3172, Longitude: 24.9633},
	{Code: "DUB", Name: "Dublin Airport", City: "Dublin", Country: "Ireland", CountryCode: "IE", Latitude: 53.4264, Longitude: -6.2499},
	{Code: "LIS", Name: "Humberto Delgado Airport", City: "Lisbon", Country: "Portugal", CountryCode: "PT", Latitude: 38.7742, Longitude: -9.1342},
	{Code: "ATH", Name: "Athens International Airport", City: "Athens", Country: "Greece", CountryCode: "GR", Latitude: 37.9364, Longitude: 23.9445},
	{Code: "WAW", Name: "Warsaw Chopin Airport", City: "Warsaw", Country: "Poland", CountryCode: "PL", Latitude: 52.1657, Longitude: 20.9671},
	{Code: "PRG", Name: "Vaclav Havel Airport Prague", City: "Prague", Country: "Czech Republic", CountryCode: "CZ", Latitude: 50.1008, Longitude: 14.2600},
	{Code: "BUD", Name: "Budapest Ferenc Liszt International Airport", City: "Budapest", Country: "Hungary", CountryCode: "HU", Latitude: 47.4298, Longitude: 19.2611},
	{Code: "OTP", Name: "Henri Coanda International Airport", City: "Bucharest", Country: "Romania", CountryCode: "RO", Latitude: 44.5711, Longitude: 26.0850},
	{Code: "SOF", Name: "Sofia Airport", City: "Sofia", Country: "Bulgaria", CountryCode: "BG", Latitude: 42.6967, Longitude: 23.4114},

	// Middle East and Africa
	{Code: "DXB", Name: "Dubai International Airport", City: "Dubai", Country: "United Arab Emirates", CountryCode: "AE", Latitude: 25.2532, Longitude: 55.3657},
	{Code: "DOH", Name: "Hamad International Airport", City: "Doha", Country: "Qatar", CountryCode: "QA", Latitude: 25.2731, Longitude: 51.6081},
	{Code: "TLV", Name: "Ben Gurion Airport", City: "Tel Aviv", Country: "Israel", CountryCode: "IL", Latitude: 32.0055, Longitude: 34.8854},
	{Code: "CAI", Name: "Cairo International Airport", City: "Cairo", Country: "Egypt", CountryCode: "EG", Latitude: 30.1219, Longitude: 31.4056},

	// Americas
	{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "United States", CountryCode: "US", Latitude: 40.6413, Longitude: -73.7781},
	{Code: "ORD", Name: "O'Hare International Airport", City: "Chicago", Country: "United States", CountryCode: "US", Latitude: 41.9742, Longitude: -87.9073},
	{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "United States", CountryCode: "US", Latitude: 33.9416, Longitude: -118.4085},
	{Code: "MIA", Name: "Miami International Airport", City: "Miami", Country: "United States", CountryCode: "US", Latitude: 25.7959, Longitude: -80.2870},
	{Code: "YYZ", Name: "Toronto Pearson International Airport", City: "Toronto", Country: "Canada", CountryCode: "CA", Latitude: 43.6777, Longitude: -79.6248},

	// Asia
	{Code: "NRT", Name: "Narita International Airport", City: "Tokyo", Country: "Japan", CountryCode: "JP", Latitude: 35.7720, Longitude: 140.3929},
	{Code: "ICN", Name: "Incheon International Airport", City: "Seoul", Country: "South Korea", CountryCode: "KR", Latitude: 37.4602, Longitude: 126.4407},
	{Code: "PEK", Name: "Beijing Capital International Airport", City: "Beijing", Country: "China", CountryCode: "CN", Latitude: 40.0799, Longitude: 116.6031},
	{Code: "SIN", Name: "Singapore Changi Airport", City: "Singapore", Country: "Singapore", CountryCode: "SG", Latitude: 1.3644, Longitude: 103.9915},
	{Code: "BKK", Name: "Suvarnabhumi Airport", City: "Bangkok", Country: "Thailand", CountryCode: "TH", Latitude: 13.6900, Longitude: 100.7501},
	{Code: "DEL", Name: "Indira Gandhi International Airport", City: "New Delhi", Country: "India", CountryCode: "IN", Latitude: 28.5562, Longitude: 77.1000},
}

// DefaultDomesticCountry is the country whose airports form the default domestic set
const DefaultDomesticCountry = "TR"
