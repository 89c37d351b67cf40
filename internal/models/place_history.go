package models

import (
	"time"
)

// PlaceHistory is a place-based historical account. HistoricalSignificance is optional.
type PlaceHistory struct {
	ID                     int64     `json:"id"`
	Name                   string    `json:"name"`
	Age                    string    `json:"age"`
	Location               string    `json:"location"`
	PlaceName              string    `json:"place_name"`
	PlaceDescription       string    `json:"place_description"`
	HistoricalSignificance string    `json:"historical_significance"`
	CreatedAt              time.Time `json:"timestamp"`
}
