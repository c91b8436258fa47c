package service

import (
	"errors"
	"fmt"

	"shorturl-analytics/internal/store"
)

var (
	// ErrLinkNotFound 链接不存在或已禁用
	ErrLinkNotFound = store.ErrLinkNotFound
	// ErrPathTaken 自定义短路径已被占用
	ErrPathTaken = store.ErrPathTaken
	// ErrPathExhausted 多次生成的随机路径均冲突
	ErrPathExhausted = errors.New("service: could not allocate a free short path")
)

// ValidationError 输入校验失败
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation 判断是否为输入校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
