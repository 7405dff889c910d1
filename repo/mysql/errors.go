package mysql

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// translateError 把 GORM / 驱动错误转换为项目内的哨兵错误。
// 依赖 gorm.Config{TranslateError: true}，同时兼容未开启翻译时的原始驱动报错。
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return myErrors.ErrRepoNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateMessage(err.Error()) {
		return fmt.Errorf("%w: %v", myErrors.ErrDuplicateEntry, err)
	}
	return err
}

func isDuplicateMessage(msg string) bool {
	return strings.Contains(msg, "Duplicate entry") || // MySQL 1062
		strings.Contains(msg, "UNIQUE constraint failed") // SQLite
}

// likeEscapeChar LIKE 的转义字符。不用反斜杠，MySQL 与 SQLite 对字符串字面量中反斜杠的处理不同
const likeEscapeChar = "!"

// escapeLike 转义 LIKE 模式中的通配符，避免用户输入的 % 和 _ 被当作通配
func escapeLike(s string) string {
	return strings.NewReplacer(likeEscapeChar, likeEscapeChar+likeEscapeChar, "%", likeEscapeChar+"%", "_", likeEscapeChar+"_").Replace(s)
}

// Join 表名
const (
	likesTable          = "likes"
	postToTagTable      = "post_to_tag"
	postToCategoryTable = "post_to_category"
)
