package entities

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BaseModel 所有博客实体共用的主键与时间戳。
// - 不使用软删除，删除即物理删除，级联规则由仓库层在事务内处理。
// - CreatedAt 只在插入时写入 (<-:create)，之后的 Save/Updates 不会覆盖。
type BaseModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"<-:create;not null"`
	UpdatedAt time.Time
}

// GetID 返回主键，未持久化时为 0
func (m BaseModel) GetID() uint64 { return m.ID }

// now 可在测试中替换
var now = time.Now

// identical 判断两个实体是否代表同一对象: 同一指针，或都已持久化且主键相同。
func identical[T any, PT interface {
	*T
	GetID() uint64
}](a, b PT) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	return a.GetID() != 0 && a.GetID() == b.GetID()
}

// indexOf 按实体身份在集合中查找，找不到返回 -1
func indexOf[T any, PT interface {
	*T
	GetID() uint64
}](list []PT, x PT) int {
	for i, item := range list {
		if identical[T, PT](item, x) {
			return i
		}
	}
	return -1
}

// removeAt 删除下标 i 处元素并保持顺序
func removeAt[E any](list []E, i int) []E {
	return append(list[:i], list[i+1:]...)
}

// notBlank 比 validation.Required 更严格: 只有空白字符的字符串同样视为缺失
var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})
