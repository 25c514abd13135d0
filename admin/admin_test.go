package admin

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"factionhub/analytics"
	"factionhub/auth"
	"factionhub/catalog"
	"factionhub/models"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(&models.UserProfile{}, &models.FactionOverlay{}, &models.LoreEntry{},
		&models.Member{}, &models.GalleryItem{}, &models.Clip{})
	return db
}

func setupTestRouter(adminModule *AdminModule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("secret"))
	router.Use(sessions.Sessions("test-session", store))
	router.LoadHTMLGlob("views/*.html")
	adminModule.RegisterRoutes(router)
	return router
}

func newTestModule(db *gorm.DB) *AdminModule {
	return NewAdminModule(db, auth.NewService(db), nil, nil)
}

func createTestProfile(db *gorm.DB, email string, superAdmin bool, factionIDs string) *models.UserProfile {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		panic(err)
	}
	profile := &models.UserProfile{
		Email:        email,
		PasswordHash: hash,
		IsSuperAdmin: superAdmin,
		FactionIDs:   factionIDs,
		CreatedAt:    time.Now(),
	}
	db.Create(profile)
	return profile
}

func loginAs(t *testing.T, router *gin.Engine, email string) []*http.Cookie {
	t.Helper()

	form := url.Values{"email": {email}, "password": {"password123"}}
	req, _ := http.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	return w.Result().Cookies()
}

func doRequest(router *gin.Engine, method, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req, _ = http.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminRoot_NotLoggedIn(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))

	w := doRequest(router, "GET", "/admin", nil, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestRequireAuth_Unauthorized(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))

	w := doRequest(router, "GET", "/admin/faction/pale-riders/", nil, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login")
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")

	form := url.Values{"email": {"admin@example.com"}, "password": {"wrong"}}
	w := doRequest(router, "POST", "/login", form, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboard_ListsEditableFactions(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "editor@example.com", false, "pale-riders")
	cookies := loginAs(t, router, "editor@example.com")

	w := doRequest(router, "GET", "/admin/dashboard", nil, cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pale Riders MC")
	assert.NotContains(t, w.Body.String(), "Blackout")
}

func TestFactionAccess_Forbidden(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "editor@example.com", false, "blackout")
	cookies := loginAs(t, router, "editor@example.com")

	w := doRequest(router, "GET", "/admin/faction/pale-riders/", nil, cookies)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFaction_NotFound(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	w := doRequest(router, "GET", "/admin/faction/nonexistent/", nil, cookies)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMergeOverlay(t *testing.T) {
	faction := catalog.ByID("pale-riders")

	info := mergeOverlay(faction, nil)
	assert.Equal(t, faction.Tagline, info.Tagline)
	assert.Equal(t, faction.Description, info.Description)
	assert.Empty(t, info.DiscordInvite)

	overlay := &models.FactionOverlay{
		Tagline:       "Custom Tagline",
		DiscordInvite: "https://discord.gg/abc",
	}
	info = mergeOverlay(faction, overlay)
	assert.Equal(t, "Custom Tagline", info.Tagline)
	assert.Equal(t, faction.Description, info.Description, "empty overlay field falls back to the catalog")
	assert.Equal(t, "https://discord.gg/abc", info.DiscordInvite)
}

func TestParseEventDate(t *testing.T) {
	parsed := parseEventDate("2025-06-15T20:30")
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 20, parsed.Hour())

	parsed = parseEventDate("2024-01-02")
	assert.Equal(t, 2024, parsed.Year())

	// empty and garbage inputs fall back to now
	assert.WithinDuration(t, time.Now(), parseEventDate(""), time.Minute)
	assert.WithinDuration(t, time.Now(), parseEventDate("not-a-date"), time.Minute)
}

func TestSaveInfo_Upsert(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	form := url.Values{
		"tagline":        {"First Tagline"},
		"description":    {"First description"},
		"discord_invite": {"https://discord.gg/one"},
	}
	w := doRequest(router, "POST", "/admin/faction/pale-riders/info", form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "msg=saved")

	form.Set("tagline", "Second Tagline")
	w = doRequest(router, "POST", "/admin/faction/pale-riders/info", form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	var overlays []models.FactionOverlay
	db.Where("faction_id = ?", "pale-riders").Find(&overlays)
	assert.Equal(t, 1, len(overlays), "saving twice keeps a single overlay row")
	assert.Equal(t, "Second Tagline", overlays[0].Tagline)
}

func TestCreateLore_AppendsToTimeline(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	for _, title := range []string{"First Entry", "Second Entry"} {
		form := url.Values{
			"title":      {title},
			"content":    {"Some lore content"},
			"year":       {"2026"},
			"event_date": {"2026-01-15T18:00"},
		}
		w := doRequest(router, "POST", "/admin/faction/pale-riders/lore", form, cookies)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "tab=lore")
		assert.Contains(t, w.Header().Get("Location"), "msg=saved")
	}

	var entries []models.LoreEntry
	db.Where("faction_id = ?", "pale-riders").Order("entry_order ASC").Find(&entries)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "First Entry", entries[0].Title)
	assert.Equal(t, 0, entries[0].Order)
	assert.Equal(t, "Second Entry", entries[1].Title)
	assert.Equal(t, 1, entries[1].Order)
}

func TestCreateLore_MissingContent(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	form := url.Values{"title": {"Only a title"}}
	w := doRequest(router, "POST", "/admin/faction/pale-riders/lore", form, cookies)

	// invalid input is skipped, not an error page
	assert.Equal(t, http.StatusFound, w.Code)
	assert.NotContains(t, w.Header().Get("Location"), "msg=saved")

	var count int64
	db.Model(&models.LoreEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateLore_KeepsTimelinePosition(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	entry := models.LoreEntry{
		FactionID: "pale-riders",
		Title:     "Original",
		Content:   "Original content",
		Order:     3,
		EventDate: time.Now(),
	}
	db.Create(&entry)

	form := url.Values{
		"title":   {"Rewritten"},
		"content": {"New content"},
		"year":    {"2025"},
	}
	w := doRequest(router, "POST", "/admin/faction/pale-riders/lore/1", form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	var updated models.LoreEntry
	db.First(&updated, entry.ID)
	assert.Equal(t, "Rewritten", updated.Title)
	assert.Equal(t, 3, updated.Order, "editing keeps the timeline position")
}

func TestDeleteLore_ScopedToFaction(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	entry := models.LoreEntry{FactionID: "pale-riders", Title: "Entry", Content: "c", EventDate: time.Now()}
	db.Create(&entry)

	// deleting through another faction's path must not touch the row
	w := doRequest(router, "DELETE", "/admin/faction/blackout/lore/1", nil, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"not_found"`)

	var count int64
	db.Model(&models.LoreEntry{}).Count(&count)
	assert.Equal(t, int64(1), count)

	w = doRequest(router, "DELETE", "/admin/faction/pale-riders/lore/1", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	db.Model(&models.LoreEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateMember(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	form := url.Values{
		"name":      {"Big Mike"},
		"role":      {"Enforcer"},
		"rank":      {"Lieutenant"},
		"is_leader": {"1"},
	}
	w := doRequest(router, "POST", "/admin/faction/pale-riders/members", form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	var member models.Member
	db.Where("faction_id = ?", "pale-riders").First(&member)
	assert.Equal(t, "Big Mike", member.Name)
	assert.True(t, member.IsLeader)
}

func TestDeleteGalleryItem_LeavesOtherFactionsAlone(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	mine := models.GalleryItem{FactionID: "pale-riders", ImageURL: "/media/a.png", UploadedAt: time.Now()}
	theirs := models.GalleryItem{FactionID: "blackout", ImageURL: "/media/b.png", UploadedAt: time.Now()}
	db.Create(&mine)
	db.Create(&theirs)

	w := doRequest(router, "DELETE", "/admin/faction/pale-riders/gallery/1", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	var remaining []models.GalleryItem
	db.Find(&remaining)
	assert.Equal(t, 1, len(remaining))
	assert.Equal(t, "blackout", remaining[0].FactionID)
}

func TestCreateClip_NormalizesPlatform(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	form := url.Values{
		"title":     {"Heist Clip"},
		"video_url": {"https://example.com/v/1"},
		"platform":  {"myspace"},
	}
	w := doRequest(router, "POST", "/admin/faction/pale-riders/clips", form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	var clip models.Clip
	db.Where("faction_id = ?", "pale-riders").First(&clip)
	assert.Equal(t, "other", clip.Platform)
}

func TestEditor_ShowsOverlayContent(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	db.Create(&models.FactionOverlay{FactionID: "pale-riders", Tagline: "Overlay Tagline"})

	w := doRequest(router, "GET", "/admin/faction/pale-riders/", nil, cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Overlay Tagline")
}

func TestEditor_ReloadWithoutWritesIsIdentical(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	db.Create(&models.FactionOverlay{FactionID: "pale-riders", Tagline: "Steady Tagline"})
	db.Create(&models.LoreEntry{FactionID: "pale-riders", Title: "Chapter One", Content: "c", Order: 0, EventDate: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)})
	db.Create(&models.LoreEntry{FactionID: "pale-riders", Title: "Chapter Two", Content: "c", Order: 1, EventDate: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)})
	db.Create(&models.Member{FactionID: "pale-riders", Name: "The President", IsLeader: true})
	db.Create(&models.GalleryItem{FactionID: "pale-riders", ImageURL: "/media/a.png", UploadedAt: time.Now()})
	db.Create(&models.Clip{FactionID: "pale-riders", Title: "Ride Out", VideoURL: "https://example.com/v", Platform: "youtube"})

	first := doRequest(router, "GET", "/admin/faction/pale-riders/?tab=lore", nil, cookies)
	second := doRequest(router, "GET", "/admin/faction/pale-riders/?tab=lore", nil, cookies)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestEditor_ShowsVisitStats(t *testing.T) {
	db := setupTestDB()
	adb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	analyticsModule := analytics.NewAnalyticsModule(adb)

	adb.Create(&analytics.FactionEvent{FactionID: "pale-riders", CookieID: "a", Event: "visit", IP: "1.1.1.1", CreatedAt: time.Now()})
	adb.Create(&analytics.FactionEvent{FactionID: "pale-riders", CookieID: "b", Event: "visit", IP: "1.1.1.2", CreatedAt: time.Now()})

	router := setupTestRouter(NewAdminModule(db, auth.NewService(db), nil, analyticsModule))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	w := doRequest(router, "GET", "/admin/faction/pale-riders/", nil, cookies)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2 page visits")
	assert.Contains(t, w.Body.String(), "last 7 days:")
	assert.Contains(t, w.Body.String(), "(2)")
}

func TestUploadGallery_StorageUnavailable(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(newTestModule(db))
	createTestProfile(db, "admin@example.com", true, "")
	cookies := loginAs(t, router, "admin@example.com")

	w := doRequest(router, "POST", "/admin/faction/pale-riders/upload/gallery", nil, cookies)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"unavailable"`)
}
