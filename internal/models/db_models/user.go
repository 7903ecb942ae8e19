package db_models

type Role string

const (
	RoleMigrant      Role = "migrant"
	RoleHealthWorker Role = "health_worker"
	RoleOfficer      Role = "officer"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMigrant, RoleHealthWorker, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'migrant'" json:"role"`
	IsVerified   bool   `gorm:"not null;default:false" json:"isVerified"`

	Profile *MigrantProfile `gorm:"foreignKey:UserID" json:"-"`
}
