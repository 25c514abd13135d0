package site

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"

	"factionhub/catalog"
	"factionhub/models"
)

const galleryPageSize = 9
const loreDefaultVisible = 5

type SiteModule struct {
	db *gorm.DB
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

func NewSiteModule(db *gorm.DB) *SiteModule {
	return &SiteModule{db: db}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.index)
	router.GET("/f/:factionId", s.factionPage)
	router.GET("/sitemap.xml", s.sitemap)
}

// index renders the landing page: every faction from the catalog, grouped
// by type.
func (s *SiteModule) index(c *gin.Context) {
	groups := []gin.H{}
	for _, t := range []struct {
		Type  catalog.FactionType
		Label string
	}{
		{catalog.TypeClassified, "Classified"},
		{catalog.TypeMC, "Motorcycle Clubs"},
		{catalog.TypeGang, "Gangs"},
		{catalog.TypeMafia, "Mafia"},
		{catalog.TypeYakuza, "Yakuza"},
		{catalog.TypeRacing, "Racing Crews"},
	} {
		factions := catalog.ByType(t.Type)
		if len(factions) == 0 {
			continue
		}
		groups = append(groups, gin.H{"label": t.Label, "factions": factions})
	}

	c.HTML(http.StatusOK, "site_index.html", gin.H{
		"title":  "Illegal Factions",
		"groups": groups,
	})
}

type loreView struct {
	models.LoreEntry
	ContentHTML template.HTML
}

func (s *SiteModule) factionPage(c *gin.Context) {
	factionID := c.Param("factionId")

	faction := catalog.ByID(factionID)
	if faction == nil {
		c.HTML(http.StatusNotFound, "site_notfound.html", gin.H{})
		return
	}

	// Each section loads independently; a failed section renders empty
	// rather than failing the page.
	info := s.loadInfo(faction)
	loreEntries := s.loadLore(faction.ID)
	members := s.loadMembers(faction.ID)
	galleryItems := s.loadGallery(faction.ID)
	clips := s.loadClips(faction.ID)

	// Timeline runs old to new; the default view keeps the last (most
	// recent) five entries.
	showAllLore := c.Query("lore") == "all"
	visibleLore := loreEntries
	if !showAllLore && len(loreEntries) > loreDefaultVisible {
		visibleLore = loreEntries[len(loreEntries)-loreDefaultVisible:]
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	visibleCount := page * galleryPageSize
	if visibleCount > len(galleryItems) {
		visibleCount = len(galleryItems)
	}
	visibleGallery := galleryItems[:visibleCount]

	c.HTML(http.StatusOK, "site_faction.html", gin.H{
		"faction":         faction,
		"info":            info,
		"descriptionHTML": template.HTML(renderMarkdown(info.Description)),
		"lore":            visibleLore,
		"loreTotal":       len(loreEntries),
		"showAllLore":     showAllLore,
		"hasHiddenLore":   !showAllLore && len(loreEntries) > loreDefaultVisible,
		"members":         members,
		"gallery":         visibleGallery,
		"hasMoreGallery":  len(galleryItems) > visibleCount,
		"nextPage":        page + 1,
		"clips":           clips,
	})
}

type factionInfo struct {
	Tagline       string
	Description   string
	DiscordInvite string
}

// loadInfo merges the overlay over the catalog defaults; a missing overlay
// or a partially filled one falls back field by field.
func (s *SiteModule) loadInfo(faction *catalog.Faction) factionInfo {
	info := factionInfo{
		Tagline:     faction.Tagline,
		Description: faction.Description,
	}
	if s.db == nil {
		return info
	}

	var overlay models.FactionOverlay
	if err := s.db.Where("faction_id = ?", faction.ID).First(&overlay).Error; err != nil {
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

func (s *SiteModule) loadLore(factionID string) []loreView {
	if s.db == nil {
		return nil
	}

	var entries []models.LoreEntry
	if err := s.db.Where("faction_id = ?", factionID).Order("entry_order ASC").Find(&entries).Error; err != nil {
		log.Printf("Error loading lore for %s: %v", factionID, err)
		return nil
	}

	views := make([]loreView, 0, len(entries))
	for _, e := range entries {
		views = append(views, loreView{
			LoreEntry:   e,
			ContentHTML: template.HTML(renderMarkdown(e.Content)),
		})
	}
	return views
}

// loadMembers returns the roster with leaders first; relative order is
// otherwise preserved.
func (s *SiteModule) loadMembers(factionID string) []models.Member {
	if s.db == nil {
		return nil
	}

	var members []models.Member
	if err := s.db.Where("faction_id = ?", factionID).Find(&members).Error; err != nil {
		log.Printf("Error loading members for %s: %v", factionID, err)
		return nil
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].IsLeader && !members[j].IsLeader
	})
	return members
}

func (s *SiteModule) loadGallery(factionID string) []models.GalleryItem {
	if s.db == nil {
		return nil
	}

	var items []models.GalleryItem
	if err := s.db.Where("faction_id = ?", factionID).Order("uploaded_at DESC").Find(&items).Error; err != nil {
		log.Printf("Error loading gallery for %s: %v", factionID, err)
		return nil
	}
	return items
}

func (s *SiteModule) loadClips(factionID string) []models.Clip {
	if s.db == nil {
		return nil
	}

	var clips []models.Clip
	if err := s.db.Where("faction_id = ?", factionID).Order("uploaded_at DESC").Find(&clips).Error; err != nil {
		log.Printf("Error loading clips for %s: %v", factionID, err)
		return nil
	}
	return clips
}

func (s *SiteModule) sitemap(c *gin.Context) {
	domain := os.Getenv("DOMAIN")
	if domain == "" {
		domain = "http://localhost:8080"
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	buf.WriteString(fmt.Sprintf("  <url><loc>%s/</loc></url>\n", domain))
	for _, f := range catalog.Factions {
		buf.WriteString(fmt.Sprintf("  <url><loc>%s/f/%s</loc></url>\n", domain, f.ID))
	}
	buf.WriteString("</urlset>\n")

	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// On a render error, fall back to the raw content so the page
		// still shows something.
		return content
	}
	return buf.String()
}
