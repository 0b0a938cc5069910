package types

// Join rows carrying the percentage attribute. The pair is the composite
// primary key, so a duplicate (parent, element) insert trips the storage
// unique constraint even if the service-level pre-check raced.

type AlloyElement struct {
	AlloyID    uint    `gorm:"primaryKey;column:alloy_id" json:"alloy_id"`
	ElementID  uint    `gorm:"primaryKey;column:element_id" json:"element_id"`
	Percentage float64 `gorm:"type:numeric(5,3);not null;column:percentage" json:"percentage"`
}

func (AlloyElement) TableName() string {
	return "alloy_element_association"
}

type PredictionElement struct {
	PredictionID uint    `gorm:"primaryKey;column:prediction_id" json:"prediction_id"`
	ElementID    uint    `gorm:"primaryKey;column:element_id" json:"element_id"`
	Percentage   float64 `gorm:"type:numeric(5,3);not null;column:percentage" json:"percentage"`
}

func (PredictionElement) TableName() string {
	return "prediction_element_association"
}

// ElementShare is the flat record returned by the "list elements with
// percentages" operations: element fields plus the association percentage.
type ElementShare struct {
	ElementID           uint    `json:"element_id"`
	ElementName         string  `json:"element_name"`
	ElementSymbol       string  `json:"element_symbol"`
	ElementAtomicNumber int     `json:"element_atomic_number"`
	Percentage          float64 `json:"percentage"`
}
