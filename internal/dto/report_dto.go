package dto

type LostReportRequest struct {
	ItemName           string `json:"item_name"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	Location           string `json:"location"`
	IdentificationMark string `json:"identification_mark"`
	TimeRange          string `json:"time_range"`
	DateLost           string `json:"date_lost"`
	ImageURL           string `json:"image_url"`
}

type FoundReportRequest struct {
	ItemName    string `json:"item_name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PlaceFound  string `json:"place_found"`
	DateFound   string `json:"date_found"`
	ImageURL    string `json:"image_url"`
}
