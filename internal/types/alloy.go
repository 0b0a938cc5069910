package types

// PropValue is clamped at write time: a negative input is stored as zero,
// never rejected. Services apply ClampPropValue before every insert/patch.
type Alloy struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PropValue   float64 `gorm:"not null;column:prop_value" json:"prop_value"`
	Category    string  `gorm:"size:100;column:category" json:"category"`
	RollingType string  `gorm:"size:50;column:rolling_type" json:"rolling_type"`
	PatentID    uint    `gorm:"not null;column:patent_id" json:"patent_id"`
}

func (Alloy) TableName() string {
	return "alloy"
}

func ClampPropValue(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
