package model

// 用户角色
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User 用户表，对应 users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Role         string  `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	TargetExamID *string `gorm:"type:varchar(64)"                               json:"target_exam_id,omitempty"`
	Grade        *string `gorm:"type:varchar(32)"                               json:"grade,omitempty"`
	Versioned
}

// TableName 指定表名
func (User) TableName() string { return "users" }
