package types

// Password is stored as opaque text. Callers pre-hash if they want hashing;
// this layer never does it for them.
type Person struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"size:50;not null;column:first_name" json:"first_name"`
	LastName     string `gorm:"size:50;not null;column:last_name" json:"last_name"`
	RoleID       uint   `gorm:"not null;column:role_id" json:"role_id"`
	Organization string `gorm:"size:200;column:organization" json:"organization"`
	Login        string `gorm:"size:20;uniqueIndex;not null;column:login" json:"login"`
	Password     string `gorm:"size:50;not null;column:password" json:"-"`
}

func (Person) TableName() string {
	return "person"
}
