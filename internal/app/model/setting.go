package model

import (
	"time"
)

// Known setting keys. homeLayout stores a JSON-encoded layout descriptor;
// the rest are plain strings rendered on the storefront.
const (
	SettingSiteName     = "siteName"
	SettingHeroTitle    = "heroTitle"
	SettingHeroSubtitle = "heroSubtitle"
	SettingAboutText    = "aboutText"
	SettingContactText  = "contactText"
	SettingFooterText   = "footerText"
	SettingHomeLayout   = "homeLayout"
)

type Setting struct {
	Key       string    `gorm:"primarykey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
