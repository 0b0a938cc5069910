package types

// MLModel is the registry row for a pre-trained model. The inference service
// resolves the actual artifact through its manifest, keyed by this id.
type MLModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null;column:name" json:"name"`
	Description string `gorm:"size:200;column:description" json:"description"`
}

func (MLModel) TableName() string {
	return "model"
}
