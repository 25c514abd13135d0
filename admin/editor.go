package admin

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"factionhub/cache"
	"factionhub/catalog"
	"factionhub/models"
)

// factionInfo is the overlay merged with the catalog defaults: any field the
// overlay leaves empty falls back to the static value.
type factionInfo struct {
	Tagline       string
	Description   string
	DiscordInvite string
}

func mergeOverlay(faction *catalog.Faction, overlay *models.FactionOverlay) factionInfo {
	info := factionInfo{
		Tagline:     faction.Tagline,
		Description: faction.Description,
	}
	if overlay == nil {
		return info
	}
	if overlay.Tagline != "" {
		info.Tagline = overlay.Tagline
	}
	if overlay.Description != "" {
		info.Description = overlay.Description
	}
	info.DiscordInvite = overlay.DiscordInvite
	return info
}

type editorData struct {
	Info    factionInfo
	Lore    []models.LoreEntry
	Members []models.Member
	Gallery []models.GalleryItem
	Clips   []models.Clip
}

// loadEditorData reads the overlay, then the four sub-collections in one
// parallel fan-out. Every mutation redirects back through here, so the
// caches are always rebuilt from the store after a write.
func (a *AdminModule) loadEditorData(c *gin.Context, faction *catalog.Faction) (*editorData, error) {
	data := &editorData{}

	var overlay models.FactionOverlay
	if err := a.db.Where("faction_id = ?", faction.ID).First(&overlay).Error; err == nil {
		data.Info = mergeOverlay(faction, &overlay)
	} else {
		data.Info = mergeOverlay(faction, nil)
	}

	g, _ := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		return a.db.Where("faction_id = ?", faction.ID).Order("entry_order ASC").Find(&data.Lore).Error
	})
	g.Go(func() error {
		return a.db.Where("faction_id = ?", faction.ID).Find(&data.Members).Error
	})
	g.Go(func() error {
		return a.db.Where("faction_id = ?", faction.ID).Order("uploaded_at DESC").Find(&data.Gallery).Error
	})
	g.Go(func() error {
		return a.db.Where("faction_id = ?", faction.ID).Find(&data.Clips).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

func (a *AdminModule) editor(c *gin.Context) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)

	activeTab := c.DefaultQuery("tab", "info")
	switch activeTab {
	case "info", "lore", "roster", "gallery", "clips":
	default:
		activeTab = "info"
	}

	data, err := a.loadEditorData(c, faction)
	if err != nil {
		log.Printf("Error loading editor data for %s: %v", faction.ID, err)
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading faction content",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_editor.html", gin.H{
		"faction":    faction,
		"info":       data.Info,
		"lore":       data.Lore,
		"members":    data.Members,
		"gallery":    data.Gallery,
		"clips":      data.Clips,
		"activeTab":   activeTab,
		"msg":         c.Query("msg"),
		"visitCount":  a.analytics.GetFactionVisitCount(faction.ID),
		"visitsByDay": a.analytics.GetVisitsByDay(faction.ID, 7),
	})
}

func (a *AdminModule) redirectToEditor(c *gin.Context, faction *catalog.Faction, tab, msg string) {
	url := "/admin/faction/" + faction.ID + "/?tab=" + tab
	if msg != "" {
		url += "&msg=" + msg
	}
	c.Redirect(http.StatusFound, url)
}

func (a *AdminModule) invalidate(factionID string) {
	if err := cache.ClearFaction(factionID); err != nil {
		log.Printf("Error clearing page cache for %s: %v", factionID, err)
	}
}

// saveInfo upserts the overlay document for the faction.
func (a *AdminModule) saveInfo(c *gin.Context) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)

	overlay := models.FactionOverlay{
		FactionID:     faction.ID,
		Tagline:       c.PostForm("tagline"),
		Description:   c.PostForm("description"),
		DiscordInvite: c.PostForm("discord_invite"),
		UpdatedAt:     time.Now(),
	}

	var existing models.FactionOverlay
	if err := a.db.Where("faction_id = ?", faction.ID).First(&existing).Error; err == nil {
		overlay.ID = existing.ID
	}

	if err := a.db.Save(&overlay).Error; err != nil {
		log.Printf("Error saving overlay for %s: %v", faction.ID, err)
		a.redirectToEditor(c, faction, "info", "error")
		return
	}

	a.invalidate(faction.ID)
	a.redirectToEditor(c, faction, "info", "saved")
}

func (a *AdminModule) createLore(c *gin.Context) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)

	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		log.Printf("Skipping lore create for %s: missing title or content", faction.ID)
		a.redirectToEditor(c, faction, "lore", "")
		return
	}

	year := c.PostForm("year")
	eventDate := parseEventDate(c.PostForm("event_date"))

	// New entries go to the end of the timeline.
	var count int64
	a.db.Model(&models.LoreEntry{}).Where("faction_id = ?", faction.ID).Count(&count)

	entry := models.LoreEntry{
		FactionID: faction.ID,
		Title:     title,
		Content:   content,
		Year:      year,
		EventDate: eventDate,
		Order:     int(count),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := a.db.Create(&entry).Error; err != nil {
		log.Printf("Error creating lore entry for %s: %v", faction.ID, err)
		a.redirectToEditor(c, faction, "lore", "error")
		return
	}

	a.invalidate(faction.ID)
	a.redirectToEditor(c, faction, "lore", "saved")
}

// updateLore merges the submitted fields into an existing entry, keeping its
// id and timeline position.
func (a *AdminModule) updateLore(c *gin.Context) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)
	entryID := c.Param("id")

	var entry models.LoreEntry
	if err := a.db.Where("id = ? AND faction_id = ?", entryID, faction.ID).First(&entry).Error; err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{"error": "Lore entry not found"})
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		log.Printf("Skipping lore update %s for %s: missing title or content", entryID, faction.ID)
		a.redirectToEditor(c, faction, "lore", "")
		return
	}

	entry.Title = title
	entry.Content = content
	entry.Year = c.PostForm("year")
	if d := c.PostForm("event_date"); d != "" {
		entry.EventDate = parseEventDate(d)
	}
	entry.UpdatedAt = time.Now()

	if err := a.db.Save(&entry).Error; err != nil {
		log.Printf("Error updating lore entry %s: %v", entryID, err)
		a.redirectToEditor(c, faction, "lore", "error")
		return
	}

	a.invalidate(faction.ID)
	a.redirectToEditor(c, faction, "lore", "saved")
}

func (a *AdminModule) deleteLore(c *gin.Context) {
	a.deleteByID(c, "lore", &models.LoreEntry{})
}

func (a *AdminModule) createMember(c *gin.Context) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)

	name := c.PostForm("name")
	if name == "" {
		log.Printf("Skipping member create for %s: missing name", faction.ID)
		a.redirectToEditor(c, faction, "roster", "")
		return
	}

	member := models.Member{
		FactionID: faction.ID,
		Name:      name,
		Role:      c.PostForm("role"),
		Rank:      c.PostForm("rank"),
		IsLeader:  c.PostForm("is_leader") == "1",
		JoinedAt:  time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := a.db.Create(&member).Error; err != nil {
		log.Printf("Error creating member for %s: %v", faction.ID, err)
		a.redirectToEditor(c, faction, "roster", "error")
		return
	}

	a.invalidate(faction.ID)
	a.redirectToEditor(c, faction, "roster", "saved")
}

func (a *AdminModule) deleteMember(c *gin.Context) {
	a.deleteByID(c, "member", &models.Member{})
}

func (a *AdminModule) createGalleryItem(c *gin.Context) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)

	imageURL := c.PostForm("image_url")
	if imageURL == "" {
		log.Printf("Skipping gallery create for %s: missing image URL", faction.ID)
		a.redirectToEditor(c, faction, "gallery", "")
		return
	}

	item := models.GalleryItem{
		FactionID:   faction.ID,
		ImageURL:    imageURL,
		Title:       c.PostForm("title"),
		Tag:         c.PostForm("tag"),
		Description: c.PostForm("description"),
		UploadedAt:  time.Now(),
	}

	if err := a.db.Create(&item).Error; err != nil {
		log.Printf("Error creating gallery item for %s: %v", faction.ID, err)
		a.redirectToEditor(c, faction, "gallery", "error")
		return
	}

	a.invalidate(faction.ID)
	a.redirectToEditor(c, faction, "gallery", "saved")
}

func (a *AdminModule) deleteGalleryItem(c *gin.Context) {
	a.deleteByID(c, "gallery item", &models.GalleryItem{})
}

func (a *AdminModule) createClip(c *gin.Context) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)

	title := c.PostForm("title")
	videoURL := c.PostForm("video_url")
	if title == "" || videoURL == "" {
		log.Printf("Skipping clip create for %s: missing title or video URL", faction.ID)
		a.redirectToEditor(c, faction, "clips", "")
		return
	}

	platform := c.PostForm("platform")
	switch platform {
	case "youtube", "twitch", "tiktok", "other":
	default:
		platform = "other"
	}

	clip := models.Clip{
		FactionID:    faction.ID,
		Title:        title,
		VideoURL:     videoURL,
		ThumbnailURL: c.PostForm("thumbnail_url"),
		Platform:     platform,
		UploadedAt:   time.Now(),
	}

	if err := a.db.Create(&clip).Error; err != nil {
		log.Printf("Error creating clip for %s: %v", faction.ID, err)
		a.redirectToEditor(c, faction, "clips", "error")
		return
	}

	a.invalidate(faction.ID)
	a.redirectToEditor(c, faction, "clips", "saved")
}

func (a *AdminModule) deleteClip(c *gin.Context) {
	a.deleteByID(c, "clip", &models.Clip{})
}

// deleteByID removes one row scoped to the loaded faction. The confirmation
// prompt lives client-side; this endpoint answers JSON.
func (a *AdminModule) deleteByID(c *gin.Context, kind string, model interface{}) {
	factionData, _ := c.Get("faction")
	faction := factionData.(*catalog.Faction)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Kind: "validation", Message: "invalid id"})
		return
	}

	result := a.db.Where("id = ? AND faction_id = ?", id, faction.ID).Delete(model)
	if result.Error != nil {
		log.Printf("Error deleting %s %d for %s: %v", kind, id, faction.ID, result.Error)
		c.JSON(http.StatusInternalServerError, apiError{Kind: "remote", Message: "failed to delete " + kind})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, apiError{Kind: "not_found", Message: kind + " not found"})
		return
	}

	a.invalidate(faction.ID)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func parseEventDate(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	// datetime-local input format, with a date-only fallback
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Now()
}
