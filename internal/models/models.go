package models

// ShelfMatch is one matched shelf range as served to the discovery
// front-end.
type ShelfMatch struct {
	SVGCode              string `json:"svg_code"`
	Floor                string `json:"floor,omitempty"`
	Description          string `json:"description,omitempty"`
	DescriptionLocalized string `json:"description_localized,omitempty"`
	CallNumberLow        string `json:"low"`
	CallNumberHigh       string `json:"high"`
}

// LocateResponse is the reply to a shelf lookup. Matches is empty, not
// absent, when nothing matched: the front-end treats that as "not found".
type LocateResponse struct {
	CallNumber string       `json:"call_number"`
	Library    string       `json:"library,omitempty"`
	Collection string       `json:"collection,omitempty"`
	Matches    []ShelfMatch `json:"matches"`
}
