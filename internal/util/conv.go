package util

// 图数据库返回的数值可能是 int64 / float64 等驱动原生类型，
// 统一在此处收窄转换，其他代码不感知存储的数值表示。

// AsFloat64 将驱动返回值转换为 float64，无法转换时返回 0
func AsFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case nil:
		return 0
	}
	return 0
}

// AsInt64 将驱动返回值转换为 int64，无法转换时返回 0
func AsInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case nil:
		return 0
	}
	return 0
}

func AsString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func AsBool(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

// AsStringSlice 转换驱动返回的列表值（元素逐个收窄为字符串）
func AsStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := AsString(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}
