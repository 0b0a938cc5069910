package types

type Patent struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AuthorsName string `gorm:"size:100;not null;column:authors_name" json:"authors_name"`
	PatentName  string `gorm:"size:100;not null;column:patent_name" json:"patent_name"`
	Description string `gorm:"size:200;column:description" json:"description"`
}

func (Patent) TableName() string {
	return "patent"
}
