// Package country normalizes country and region identifiers. Ranking
// datasets spell the same country several ways across years ("USA",
// "United States of America"); every spelling maps to one ISO 3166-1
// alpha-2 code, and every code maps back to one canonical display name.
package country

import (
	"strings"

	"github.com/unirank/unirank/internal/domain/model"
)

// displayByCode maps an ISO code to the canonical display name.
var displayByCode = map[string]string{
	"US": "United States",
	"GB": "United Kingdom",
	"CN": "China (Mainland)",
	"HK": "Hong Kong SAR",
	"MO": "Macau SAR",
	"TW": "Taiwan",
	"SG": "Singapore",
	"JP": "Japan",
	"KR": "South Korea",
	"DE": "Germany",
	"FR": "France",
	"AU": "Australia",
	"CA": "Canada",
	"CH": "Switzerland",
	"NL": "Netherlands",
	"SE": "Sweden",
	"IT": "Italy",
	"ES": "Spain",
	"RU": "Russia",
	"IN": "India",
	"BR": "Brazil",
	"MX": "Mexico",
	"TR": "Turkey",
	"NZ": "New Zealand",
	"IE": "Ireland",
	"BE": "Belgium",
	"AT": "Austria",
	"DK": "Denmark",
	"NO": "Norway",
	"FI": "Finland",
	"PL": "Poland",
	"PT": "Portugal",
	"CZ": "Czech Republic",
	"GR": "Greece",
	"HU": "Hungary",
	"RO": "Romania",
	"BG": "Bulgaria",
	"HR": "Croatia",
	"SI": "Slovenia",
	"SK": "Slovakia",
	"RS": "Serbia",
	"EE": "Estonia",
	"LV": "Latvia",
	"LT": "Lithuania",
	"LU": "Luxembourg",
	"MT": "Malta",
	"CY": "Cyprus",
	"IS": "Iceland",
	"UA": "Ukraine",
	"BY": "Belarus",
	"GE": "Georgia",
	"AM": "Armenia",
	"AZ": "Azerbaijan",
	"IL": "Israel",
	"SA": "Saudi Arabia",
	"AE": "United Arab Emirates",
	"QA": "Qatar",
	"KW": "Kuwait",
	"BH": "Bahrain",
	"OM": "Oman",
	"JO": "Jordan",
	"LB": "Lebanon",
	"IR": "Iran",
	"IQ": "Iraq",
	"SY": "Syria",
	"PS": "Palestine",
	"MY": "Malaysia",
	"TH": "Thailand",
	"ID": "Indonesia",
	"PH": "Philippines",
	"VN": "Vietnam",
	"PK": "Pakistan",
	"BD": "Bangladesh",
	"LK": "Sri Lanka",
	"KZ": "Kazakhstan",
	"KG": "Kyrgyzstan",
	"BN": "Brunei",
	"UZ": "Uzbekistan",
	"EG": "Egypt",
	"ZA": "South Africa",
	"NG": "Nigeria",
	"MA": "Morocco",
	"TN": "Tunisia",
	"KE": "Kenya",
	"GH": "Ghana",
	"ET": "Ethiopia",
	"UG": "Uganda",
	"SD": "Sudan",
	"LY": "Libya",
	"AR": "Argentina",
	"CL": "Chile",
	"CO": "Colombia",
	"PE": "Peru",
	"VE": "Venezuela",
	"EC": "Ecuador",
	"BO": "Bolivia",
	"PY": "Paraguay",
	"UY": "Uruguay",
	"CR": "Costa Rica",
	"PA": "Panama",
	"GT": "Guatemala",
	"HN": "Honduras",
	"DO": "Dominican Republic",
	"CU": "Cuba",
	"PR": "Puerto Rico",
}

// codeByVariant maps lowercase dataset spellings and common aliases to
// ISO codes. Canonical display names are added at init so the mapping is
// consistent in both directions.
var codeByVariant = map[string]string{
	"united states of america": "US",
	"usa":                      "US",
	"america":                  "US",
	"uk":                       "GB",
	"england":                  "GB",
	"britain":                  "GB",
	"china":                    "CN",
	"hong kong":                "HK",
	"hongkong":                 "HK",
	"hong kong sar, china":     "HK",
	"macao sar":                "MO",
	"macao sar, china":         "MO",
	"macau":                    "MO",
	"taiwan, china":            "TW",
	"republic of korea":        "KR",
	"korea":                    "KR",
	"korea, republic of":       "KR",
	"swiss":                    "CH",
	"the netherlands":          "NL",
	"russian federation":       "RU",
	"türkiye":                  "TR",
	"czechia":                  "CZ",
	"northern cyprus":          "CY",
	"uae":                      "AE",
	"viet nam":                 "VN",
	"brunei darussalam":        "BN",
	"iran, islamic republic of":          "IR",
	"iran (islamic republic of)":         "IR",
	"syrian arab republic":               "SY",
	"venezuela (bolivarian republic of)": "VE",
}

func init() {
	for code, name := range displayByCode {
		codeByVariant[strings.ToLower(name)] = code
	}
}

// Normalize converts a raw dataset spelling into a Country with a resolved
// ISO code where one is known. Unknown spellings keep the raw name with an
// empty code.
func Normalize(raw string) model.Country {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.Country{}
	}
	if code, ok := Resolve(s); ok {
		return model.Country{Code: code, Name: displayByCode[code]}
	}
	return model.Country{Name: s}
}

// Resolve maps a query to an ISO code. The query may be a code ("cn"), a
// canonical display name, or any known dataset variant or alias; matching
// is case-insensitive.
func Resolve(query string) (string, bool) {
	s := strings.TrimSpace(query)
	if s == "" {
		return "", false
	}
	if up := strings.ToUpper(s); len(up) == 2 {
		if _, ok := displayByCode[up]; ok {
			return up, true
		}
	}
	code, ok := codeByVariant[strings.ToLower(s)]
	return code, ok
}

// Matches reports whether a normalized country satisfies a user query.
// A query that resolves to an ISO code must match the code exactly;
// anything else falls back to a case-insensitive substring match on the
// display name, so partially known datasets stay reachable.
func Matches(c model.Country, query string) bool {
	if code, ok := Resolve(query); ok {
		return c.Code == code
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.Name), q)
}
