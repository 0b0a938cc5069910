package types

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:20;uniqueIndex;not null;column:name" json:"name"`
	Description string `gorm:"size:100;column:description" json:"description"`
}

func (Role) TableName() string {
	return "role"
}
