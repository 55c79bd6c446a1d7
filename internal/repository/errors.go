package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// isDuplicateErr 判断是否为唯一键冲突。
// 优先认gorm的翻译结果（TranslateError开启时会给ErrDuplicatedKey），
// 再兜底检查MySQL原生错误号1062（Duplicate entry）和sqlite的约束提示（测试里用内存库）
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
