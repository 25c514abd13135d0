package analytics

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FactionEvent is one recorded visit to a public faction page.
type FactionEvent struct {
	ID        uint      `gorm:"primary_key;autoIncrement"`
	FactionID string    `gorm:"not null;index"`
	CookieID  string    `gorm:"not null;index"`
	Event     string    `gorm:"not null;default:'visit'"`
	IP        string    `gorm:"not null"`
	Language  *string
	Browser   *string
	CreatedAt time.Time `gorm:"index"`
}

type AnalyticsModule struct {
	db *gorm.DB
}

// NewAnalyticsModule returns nil when no analytics database is configured;
// a nil module is safe to call and records nothing.
func NewAnalyticsModule(db *gorm.DB) *AnalyticsModule {
	if db == nil {
		log.Println("Analytics DB is nil, analytics will be disabled")
		return nil
	}

	if err := db.AutoMigrate(&FactionEvent{}); err != nil {
		log.Printf("Error migrating faction_events table: %v", err)
		return nil
	}

	log.Println("Analytics module initialized successfully")
	return &AnalyticsModule{db: db}
}

// TrackVisit records a faction page visit. Repeat visits from the same
// visitor within 30 minutes are not counted again.
func (a *AnalyticsModule) TrackVisit(c *gin.Context, factionID string) {
	if a == nil || a.db == nil {
		return
	}

	cookieID := a.getOrCreateCookieID(c)

	thirtyMinutesAgo := time.Now().Add(-30 * time.Minute)
	var recentVisit FactionEvent
	err := a.db.Where("cookie_id = ? AND faction_id = ? AND created_at > ?",
		cookieID, factionID, thirtyMinutesAgo).First(&recentVisit).Error
	if err == nil {
		return
	}

	event := FactionEvent{
		FactionID: factionID,
		CookieID:  cookieID,
		Event:     "visit",
		IP:        c.ClientIP(),
		Language:  extractLanguage(c),
		Browser:   extractBrowser(c.Request.UserAgent()),
		CreatedAt: time.Now(),
	}

	// Write asynchronously so tracking never delays the page.
	go func() {
		if err := a.db.Create(&event).Error; err != nil {
			log.Printf("Error saving analytics event: %v", err)
		}
	}()
}

// GetFactionVisitCount returns total recorded visits for a faction.
func (a *AnalyticsModule) GetFactionVisitCount(factionID string) int64 {
	if a == nil || a.db == nil {
		return 0
	}
	var count int64
	if err := a.db.Model(&FactionEvent{}).Where("faction_id = ?", factionID).Count(&count).Error; err != nil {
		log.Printf("Error counting faction visits: %v", err)
		return 0
	}
	return count
}

type DayVisits struct {
	Date  string
	Count int64
}

// GetVisitsByDay returns daily visit counts for the last n days.
func (a *AnalyticsModule) GetVisitsByDay(factionID string, days int) []DayVisits {
	if a == nil || a.db == nil {
		return nil
	}

	since := time.Now().AddDate(0, 0, -days)
	var rows []DayVisits
	err := a.db.Model(&FactionEvent{}).
		Select("date(created_at) as date, count(*) as count").
		Where("faction_id = ? AND created_at > ?", factionID, since).
		Group("date(created_at)").
		Order("date(created_at)").
		Scan(&rows).Error
	if err != nil {
		log.Printf("Error loading visits by day: %v", err)
		return nil
	}
	return rows
}

func (a *AnalyticsModule) getOrCreateCookieID(c *gin.Context) string {
	const cookieName = "factionhub_visitor_id"

	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	id := uuid.NewString()
	c.SetCookie(cookieName, id, 86400*365, "/", "", false, true)
	return id
}

func extractBrowser(userAgent string) *string {
	ua := strings.ToLower(userAgent)
	var browser string
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		return nil
	}
	return &browser
}

func extractLanguage(c *gin.Context) *string {
	accept := c.GetHeader("Accept-Language")
	if accept == "" {
		return nil
	}
	lang := strings.TrimSpace(strings.Split(accept, ",")[0])
	if lang == "" {
		return nil
	}
	return &lang
}
