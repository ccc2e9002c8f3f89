package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── PostgreSQL JSONB 自定义类型 ──

// UserMetadata 对应 app_users.user_metadata JSONB 列，实现 GORM Scanner/Valuer 接口。
// 字段结构由外部身份服务决定，这里只取业务用到的两项。
type UserMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Scan 将数据库返回的 JSONB 文本解析为 UserMetadata。
func (m *UserMetadata) Scan(src interface{}) error {
	if src == nil {
		*m = UserMetadata{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("UserMetadata.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*m = UserMetadata{}
		return nil
	}
	return json.Unmarshal(b, m)
}

// Value 将 UserMetadata 序列化为 JSONB 文本。
func (m UserMetadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("UserMetadata.Value: %w", err)
	}
	return string(b), nil
}
