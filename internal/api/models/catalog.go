package models

// LocationEntry is one store in the catalog listing. Index is the stable
// position shared by the marker layer and the card list.
type LocationEntry struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
	Phone   string `json:"phone"`
	Point   Point  `json:"point"`

	// Distance is the rounded display distance in miles from the origin.
	// Empty until the background refresh has computed it.
	Distance string `json:"distance,omitempty"`
}

// LocationList is the full catalog with the device origin.
type LocationList struct {
	Origin    Point           `json:"origin"`
	Locations []LocationEntry `json:"locations"`
}

// CatalogReloaded is the response after an admin catalog reload.
type CatalogReloaded struct {
	Locations  int       `json:"locations"`
	ReloadedAt Timestamp `json:"reloadedAt"`
}
