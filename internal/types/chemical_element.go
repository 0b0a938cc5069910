package types

type ChemicalElement struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:12;not null;column:name" json:"name"`
	AtomicNumber int    `gorm:"not null;column:atomic_number" json:"atomic_number"`
	Symbol       string `gorm:"size:2;uniqueIndex;not null;column:symbol" json:"symbol"`
}

func (ChemicalElement) TableName() string {
	return "chemical_element"
}
