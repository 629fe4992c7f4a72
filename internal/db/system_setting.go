package db

import "gorm.io/gorm"

// Setting keys known to the system settings service.
const (
	SettingKeyAIProvider     = "ai_provider"
	SettingKeyOpenAIAPIKey   = "openai_api_key"
	SettingKeyDeepSeekAPIKey = "deepseek_api_key"
)

// SystemSetting is one key/value configuration row editable from the
// dashboard.
type SystemSetting struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}
