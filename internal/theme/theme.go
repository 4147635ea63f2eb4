// Package theme maps a chosen theme to its map style, marker icon assets,
// route line color and card palette. The table is populated once and
// consumed everywhere, replacing per-render switch statements.
package theme

// ID identifies one of the fixed themes.
type ID string

// The fixed theme enumeration. Blue is the fallback default when the caller
// supplies no theme or an unrecognized one.
const (
	Blue    ID = "blue"
	Purple  ID = "purple"
	Green   ID = "green"
	Neutral ID = "neutral"
	Gray    ID = "gray"
)

// DefaultID is the theme used when no valid theme is supplied.
const DefaultID = Blue

// CardPalette holds the color and alpha table for one theme's location cards.
type CardPalette struct {
	UpperSectionColor string  `json:"upperSectionColor"`
	NameColor         string  `json:"nameColor"`
	AddressColor      string  `json:"addressColor"`
	HoursColor        string  `json:"hoursColor"`
	HoursHeaderColor  string  `json:"hoursHeaderColor"`
	PhoneColor        string  `json:"phoneColor"`
	PhoneHeaderColor  string  `json:"phoneHeaderColor"`
	DistanceColor     string  `json:"distanceColor"`
	MilesAbbrColor    string  `json:"milesAbbrColor"`
	NavButtonColor    string  `json:"navButtonColor"`
	HeaderAlpha       float64 `json:"headerAlpha"`
	BodyAlpha         float64 `json:"bodyAlpha"`
}

// Configuration is the resolved render configuration for one theme.
// Immutable once resolved for the session's lifetime.
type Configuration struct {
	ID             ID          `json:"id"`
	MapStyleURL    string      `json:"mapStyleUrl"`
	UnselectedIcon string      `json:"unselectedIcon"`
	SelectedIcon   string      `json:"selectedIcon"`
	OriginIcon     string      `json:"originIcon"`
	RouteLineColor string      `json:"routeLineColor"`
	CardPalette    CardPalette `json:"cardPalette"`
}

// configurations is the fixed lookup table, keyed by theme ID.
var configurations = map[ID]Configuration{
	Blue: {
		ID:             Blue,
		MapStyleURL:    "mapbox://styles/mapbox/navigation-guidance-day-v2",
		UnselectedIcon: "blue_unselected_ice_cream",
		SelectedIcon:   "blue_selected_ice_cream",
		OriginIcon:     "blue_user_location",
		RouteLineColor: "#2196f3",
		CardPalette: CardPalette{
			UpperSectionColor: "#1565c0",
			NameColor:         "#ffffff",
			AddressColor:      "#ffffff",
			HoursColor:        "#bbdefb",
			HoursHeaderColor:  "#e3f2fd",
			PhoneColor:        "#bbdefb",
			PhoneHeaderColor:  "#e3f2fd",
			DistanceColor:     "#ffffff",
			MilesAbbrColor:    "#ffffff",
			NavButtonColor:    "#7c4dff",
			HeaderAlpha:       0.41,
			BodyAlpha:         0.48,
		},
	},
	Purple: {
		ID:             Purple,
		MapStyleURL:    "mapbox://styles/mapbox/dark-v9",
		UnselectedIcon: "purple_unselected_burger",
		SelectedIcon:   "purple_selected_burger",
		OriginIcon:     "purple_user_location",
		RouteLineColor: "#7c4dff",
		CardPalette: CardPalette{
			UpperSectionColor: "#4527a0",
			NameColor:         "#ffffff",
			AddressColor:      "#ffffff",
			HoursColor:        "#d1c4e9",
			HoursHeaderColor:  "#ede7f6",
			PhoneColor:        "#d1c4e9",
			PhoneHeaderColor:  "#ede7f6",
			DistanceColor:     "#ffffff",
			MilesAbbrColor:    "#ffffff",
			NavButtonColor:    "#651fff",
			HeaderAlpha:       0.48,
			BodyAlpha:         0.55,
		},
	},
	Green: {
		ID:             Green,
		MapStyleURL:    "mapbox://styles/mapbox/outdoors-v10",
		UnselectedIcon: "green_unselected_money",
		SelectedIcon:   "green_selected_money",
		OriginIcon:     "green_user_location",
		RouteLineColor: "#00c853",
		CardPalette: CardPalette{
			UpperSectionColor: "#1b5e20",
			NameColor:         "#ffffff",
			AddressColor:      "#ffffff",
			HoursColor:        "#c8e6c9",
			HoursHeaderColor:  "#e8f5e9",
			PhoneColor:        "#c8e6c9",
			PhoneHeaderColor:  "#e8f5e9",
			DistanceColor:     "#ffffff",
			MilesAbbrColor:    "#ffffff",
			NavButtonColor:    "#00e676",
			HeaderAlpha:       0.45,
			BodyAlpha:         0.52,
		},
	},
	Neutral: {
		ID:             Neutral,
		MapStyleURL:    "mapbox://styles/mapbox/streets-v10",
		UnselectedIcon: "white_unselected_house",
		SelectedIcon:   "gray_selected_house",
		OriginIcon:     "neutral_orange_user_location",
		RouteLineColor: "#ff6e40",
		CardPalette: CardPalette{
			UpperSectionColor: "#fafafa",
			NameColor:         "#212121",
			AddressColor:      "#424242",
			HoursColor:        "#616161",
			HoursHeaderColor:  "#9e9e9e",
			PhoneColor:        "#616161",
			PhoneHeaderColor:  "#9e9e9e",
			DistanceColor:     "#212121",
			MilesAbbrColor:    "#757575",
			NavButtonColor:    "#ff6e40",
			HeaderAlpha:       1.0,
			BodyAlpha:         1.0,
		},
	},
	Gray: {
		ID:             Gray,
		MapStyleURL:    "mapbox://styles/mapbox/light-v9",
		UnselectedIcon: "white_unselected_bike",
		SelectedIcon:   "gray_selected_bike",
		OriginIcon:     "gray_user_location",
		RouteLineColor: "#607d8b",
		CardPalette: CardPalette{
			UpperSectionColor: "#455a64",
			NameColor:         "#ffffff",
			AddressColor:      "#eceff1",
			HoursColor:        "#cfd8dc",
			HoursHeaderColor:  "#eceff1",
			PhoneColor:        "#cfd8dc",
			PhoneHeaderColor:  "#eceff1",
			DistanceColor:     "#ffffff",
			MilesAbbrColor:    "#b0bec5",
			NavButtonColor:    "#78909c",
			HeaderAlpha:       0.50,
			BodyAlpha:         0.60,
		},
	},
}

// Resolve returns the configuration for the given theme ID. Unrecognized or
// empty IDs resolve to the Blue configuration.
func Resolve(id ID) Configuration {
	if cfg, ok := configurations[id]; ok {
		return cfg
	}
	return configurations[DefaultID]
}

// IDs returns all theme IDs in a stable order.
func IDs() []ID {
	return []ID{Blue, Purple, Green, Neutral, Gray}
}
