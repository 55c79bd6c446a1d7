// Package apperr 定义全局的业务错误分类。
// service层返回的错误都能用errors.Is归到这四类之一，handler据此决定HTTP状态码和提示语。
package apperr

import "errors"

var (
	// ErrValidation 必填字段缺失、格式不对等，可以直接把信息展示给用户
	ErrValidation = errors.New("参数校验失败")
	// ErrDuplicateKey 用户名/邮箱/视频标题撞车
	ErrDuplicateKey = errors.New("记录已存在")
	// ErrNotFound 引用的账号/视频/评论不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrStorage 底层持久化或文件存储失败，对外只给笼统提示，细节进日志
	ErrStorage = errors.New("存储操作失败")
)

// Validation 带上具体提示语的校验错误，errors.Is(err, ErrValidation)仍然成立
func Validation(msg string) error {
	return &classified{class: ErrValidation, msg: msg}
}

func Duplicate(msg string) error {
	return &classified{class: ErrDuplicateKey, msg: msg}
}

func NotFound(msg string) error {
	return &classified{class: ErrNotFound, msg: msg}
}

func Storage(msg string) error {
	return &classified{class: ErrStorage, msg: msg}
}

type classified struct {
	class error
	msg   string
}

func (e *classified) Error() string {
	return e.msg
}

// Unwrap让errors.Is能顺着找到分类哨兵
func (e *classified) Unwrap() error {
	return e.class
}
