package model

import "time"

// Thumbnail records a successful generation. Rows are immutable once
// written and never deleted. ImageURL is set only in the storage-backed
// deployment variant; inline deployments return the artifact directly
// and keep metadata only.
type Thumbnail struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	UserID        string    `json:"user_id" gorm:"size:64;not null;index:idx_thumbnails_user_created"`
	Description   string    `json:"description" gorm:"type:text"`
	ThumbnailText string    `json:"thumbnail_text" gorm:"size:512"`
	Style         string    `json:"style" gorm:"size:128"`
	AspectRatio   string    `json:"aspect_ratio" gorm:"size:16"`
	ImageURL      string    `json:"image_url,omitempty" gorm:"size:512"`
	CreatedAt     time.Time `json:"created_at" gorm:"index:idx_thumbnails_user_created"`
}
