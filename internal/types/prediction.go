package types

// Same prop_value clamp rule as Alloy.
type Prediction struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PropValue   float64 `gorm:"not null;column:prop_value" json:"prop_value"`
	Category    string  `gorm:"size:100;column:category" json:"category"`
	MLModelID   uint    `gorm:"not null;column:ml_model_id" json:"ml_model_id"`
	RollingType string  `gorm:"size:50;column:rolling_type" json:"rolling_type"`
	PersonID    uint    `gorm:"not null;column:person_id" json:"person_id"`
}

func (Prediction) TableName() string {
	return "prediction"
}
