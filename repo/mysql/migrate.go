package mysql

import (
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// Models 需要自动迁移的实体，join 表 (likes / post_to_tag / post_to_category) 由 many2many 标签生成
func Models() []interface{} {
	return []interface{}{
		&entities.User{},
		&entities.Tag{},
		&entities.Category{},
		&entities.Post{},
		&entities.Comment{},
	}
}

// AutoMigrate 执行表结构迁移
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
