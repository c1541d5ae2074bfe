package model

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps 创建 / 更新时间，由 GORM 自动维护
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Versioned 软删除 + 乐观锁版本号
// 更新时仓储层以 version 作为条件并自增，影响行数为 0 即视为冲突
type Versioned struct {
	Timestamps
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Version   int            `gorm:"not null;default:1" json:"version"`
}
