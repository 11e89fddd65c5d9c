package util

import (
	"errors"
	"fmt"
)

// 错误分类：每个服务调用要么返回完整结果，要么返回且仅返回其中一类
var (
	// ErrConfiguration 外部存储的连接参数缺失，必须在发起任何查询前检测
	ErrConfiguration = errors.New("configuration missing")
	// ErrNotFound 引用的实体不存在
	ErrNotFound = errors.New("not found")
	// ErrExternalStore 存储可达但查询失败（网络、查询错误、临时不可用）
	ErrExternalStore = errors.New("external store error")
	// ErrValidation 输入不合法，需在写入存储前拒绝
	ErrValidation = errors.New("validation failed")
)

func ConfigurationError(component string) error {
	return fmt.Errorf("%w: %s not configured", ErrConfiguration, component)
}

func NotFoundError(entity, id string) error {
	return fmt.Errorf("%w: %s '%s'", ErrNotFound, entity, id)
}

func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExternalStore, op, err)
}

func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
