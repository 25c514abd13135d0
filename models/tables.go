package models

import (
	"strings"
	"time"
)

type UserProfile struct {
	ID           int       `gorm:"primary_key;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
	DisplayName  string    `json:"display_name"`
	IsSuperAdmin bool      `gorm:"default:false" json:"is_super_admin"`
	FactionIDs   string    `gorm:"type:text" json:"faction_ids"` // comma-separated faction ids the user may edit
	CreatedAt    time.Time `json:"created_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// FactionIDList splits the stored comma list, dropping empty entries.
func (u *UserProfile) FactionIDList() []string {
	if u.FactionIDs == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(u.FactionIDs, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// FactionOverlay holds the admin-editable fields layered over a faction's
// static catalog entry. At most one row per faction; empty fields fall back
// to the catalog defaults at render time.
type FactionOverlay struct {
	ID            int       `gorm:"primary_key;autoIncrement" json:"id"`
	FactionID     string    `gorm:"unique;not null;index" json:"faction_id"`
	Tagline       string    `json:"tagline"`
	Description   string    `gorm:"type:text" json:"description"`
	DiscordInvite string    `json:"discord_invite"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type LoreEntry struct {
	ID        uint      `gorm:"primary_key"`
	FactionID string    `gorm:"not null;index" json:"faction_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"` // markdown
	Year      string    `json:"year"`                     // display label, free text
	EventDate time.Time `json:"event_date"`
	Order     int       `gorm:"column:entry_order;index" json:"order"` // timeline sort key
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Member struct {
	ID        uint      `gorm:"primary_key"`
	FactionID string    `gorm:"not null;index" json:"faction_id"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `json:"role"`
	Rank      string    `json:"rank"`
	IsLeader  bool      `gorm:"default:false" json:"is_leader"`
	JoinedAt  time.Time `json:"joined_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GalleryItem struct {
	ID          uint      `gorm:"primary_key"`
	FactionID   string    `gorm:"not null;index" json:"faction_id"`
	ImageURL    string    `gorm:"not null" json:"image_url"`
	Title       string    `json:"title"`
	Tag         string    `json:"tag"`
	Description string    `gorm:"type:text" json:"description"`
	UploadedAt  time.Time `gorm:"index" json:"uploaded_at"`
}

type Clip struct {
	ID           uint      `gorm:"primary_key"`
	FactionID    string    `gorm:"not null;index" json:"faction_id"`
	Title        string    `gorm:"not null" json:"title"`
	VideoURL     string    `gorm:"not null" json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Platform     string    `gorm:"default:'youtube'" json:"platform"` // youtube, twitch, tiktok, other
	UploadedAt   time.Time `json:"uploaded_at"`
}
