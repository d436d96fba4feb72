package domain

import "time"

// Breast side markers, as recorded by the mobile client.
const (
	BreastRight = "D"
	BreastLeft  = "E"
)

// FeedingEntry is one breastfeeding or milk-extraction event, owned by
// exactly one baby. Milk quantity is only present for extractions.
type FeedingEntry struct {
	ID       int64     `json:"id"`
	BabyID   int64     `json:"bebe_id"`
	MotherID int64     `json:"mae_id"`
	Date     time.Time `json:"data_hora"`
	// Millilitres extracted; zero for plain breastfeeds.
	MilkQuantity float64 `json:"qtd_leite"`
	Breast       string  `json:"mama"`
	// Minutes.
	Duration int `json:"duracao"`
}
