package admin

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"factionhub/auth"
	"factionhub/catalog"
	emailpkg "factionhub/email"
	"factionhub/models"
)

func (a *AdminModule) listUsers(c *gin.Context) {
	var users []models.UserProfile
	if err := a.db.Order("email ASC").Find(&users).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading users",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_users.html", gin.H{
		"users":    users,
		"factions": catalog.Factions,
		"msg":      c.Query("msg"),
	})
}

// saveUser creates or updates a profile: super-admin flag, faction access
// list, and optionally a new password. Creating requires an initial password.
func (a *AdminModule) saveUser(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.Redirect(http.StatusFound, "/admin/users/")
		return
	}

	displayName := c.PostForm("display_name")
	password := c.PostForm("password")
	isSuperAdmin := c.PostForm("is_super_admin") == "1"
	factionIDs := auth.JoinFactionIDs(c.PostFormArray("faction_ids"))

	var profile models.UserProfile
	err := a.db.Where("email = ?", email).First(&profile).Error
	if err != nil {
		if password == "" {
			c.Redirect(http.StatusFound, "/admin/users/?msg=password_required")
			return
		}
		created, err := a.auth.EnsureProfile(email, displayName, password)
		if err != nil {
			log.Printf("Error creating profile for %s: %v", email, err)
			c.Redirect(http.StatusFound, "/admin/users/?msg=error")
			return
		}
		profile = *created
	} else if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", email, err)
			c.Redirect(http.StatusFound, "/admin/users/?msg=error")
			return
		}
		profile.PasswordHash = hash
	}

	grantedNew := factionIDs != profile.FactionIDs && factionIDs != ""

	profile.DisplayName = displayName
	profile.IsSuperAdmin = isSuperAdmin
	profile.FactionIDs = factionIDs

	if err := a.db.Save(&profile).Error; err != nil {
		log.Printf("Error saving profile for %s: %v", email, err)
		c.Redirect(http.StatusFound, "/admin/users/?msg=error")
		return
	}

	if grantedNew {
		a.notifyAccessGranted(&profile)
	}

	c.Redirect(http.StatusFound, "/admin/users/?msg=saved")
}

func (a *AdminModule) notifyAccessGranted(profile *models.UserProfile) {
	emailService := emailpkg.NewEmailService()
	if !emailService.Configured() {
		return
	}

	var names []string
	for _, id := range profile.FactionIDList() {
		if f := catalog.ByID(id); f != nil {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return
	}

	if err := emailService.SendAccessGrantedEmail(profile.Email, names); err != nil {
		log.Printf("Error sending access notification to %s: %v", profile.Email, err)
	}
}

func (a *AdminModule) deleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Kind: "validation", Message: "invalid id"})
		return
	}

	profileData, _ := c.Get("profile")
	if me, ok := profileData.(*models.UserProfile); ok && me.ID == id {
		c.JSON(http.StatusBadRequest, apiError{Kind: "validation", Message: "cannot delete your own account"})
		return
	}

	result := a.db.Delete(&models.UserProfile{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, apiError{Kind: "remote", Message: "failed to delete user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, apiError{Kind: "not_found", Message: "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (a *AdminModule) settings(c *gin.Context) {
	type factionStatus struct {
		Faction    catalog.Faction
		HasOverlay bool
		LoreCount  int64
	}

	statuses := make([]factionStatus, 0, len(catalog.Factions))
	for _, f := range catalog.Factions {
		var overlayCount, loreCount int64
		a.db.Model(&models.FactionOverlay{}).Where("faction_id = ?", f.ID).Count(&overlayCount)
		a.db.Model(&models.LoreEntry{}).Where("faction_id = ?", f.ID).Count(&loreCount)
		statuses = append(statuses, factionStatus{
			Faction:    f,
			HasOverlay: overlayCount > 0,
			LoreCount:  loreCount,
		})
	}

	c.HTML(http.StatusOK, "admin_settings.html", gin.H{
		"statuses": statuses,
		"msg":      c.Query("msg"),
	})
}

// seedFaction fills an empty faction with its catalog overlay and a couple
// of starter entries so new pages don't look bare.
func (a *AdminModule) seedFaction(c *gin.Context) {
	factionID := c.Param("factionId")
	faction := catalog.ByID(factionID)
	if faction == nil {
		c.Redirect(http.StatusFound, "/admin/settings/?msg=error")
		return
	}

	var overlayCount int64
	a.db.Model(&models.FactionOverlay{}).Where("faction_id = ?", faction.ID).Count(&overlayCount)
	if overlayCount == 0 {
		overlay := models.FactionOverlay{
			FactionID:   faction.ID,
			Tagline:     faction.Tagline,
			Description: faction.Description,
			UpdatedAt:   time.Now(),
		}
		if err := a.db.Create(&overlay).Error; err != nil {
			log.Printf("Error seeding overlay for %s: %v", faction.ID, err)
		}
	}

	var loreCount int64
	a.db.Model(&models.LoreEntry{}).Where("faction_id = ?", faction.ID).Count(&loreCount)
	if loreCount == 0 {
		entry := models.LoreEntry{
			FactionID: faction.ID,
			Title:     "The Beginning",
			Content:   faction.Description,
			Year:      strconv.Itoa(time.Now().Year()),
			EventDate: time.Now(),
			Order:     0,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := a.db.Create(&entry).Error; err != nil {
			log.Printf("Error seeding lore for %s: %v", faction.ID, err)
		}
	}

	var memberCount int64
	a.db.Model(&models.Member{}).Where("faction_id = ?", faction.ID).Count(&memberCount)
	if memberCount == 0 {
		member := models.Member{
			FactionID: faction.ID,
			Name:      "Founder",
			Role:      "Leadership",
			Rank:      "Boss",
			IsLeader:  true,
			JoinedAt:  time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := a.db.Create(&member).Error; err != nil {
			log.Printf("Error seeding member for %s: %v", faction.ID, err)
		}
	}

	a.invalidate(faction.ID)
	c.Redirect(http.StatusFound, "/admin/settings/?msg=seeded")
}
