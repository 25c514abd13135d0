package admin

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"factionhub/analytics"
	"factionhub/auth"
	"factionhub/catalog"
	"factionhub/storage"
)

type AdminModule struct {
	db        *gorm.DB
	auth      *auth.Service
	store     storage.ObjectStore
	analytics *analytics.AnalyticsModule
}

func NewAdminModule(db *gorm.DB, authService *auth.Service, store storage.ObjectStore, analyticsModule *analytics.AnalyticsModule) *AdminModule {
	return &AdminModule{
		db:        db,
		auth:      authService,
		store:     store,
		analytics: analyticsModule,
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", a.loginPage)
	router.POST("/login", a.loginPost)
	router.GET("/admin", a.adminRoot)
	router.GET("/admin/logout", a.logout)
	router.GET("/admin/dashboard", a.requireAuth, a.dashboard)

	factionGroup := router.Group("/admin/faction/:factionId")
	factionGroup.Use(a.requireAuth, a.loadFaction)
	{
		factionGroup.GET("/", a.editor)
		factionGroup.POST("/info", a.saveInfo)
		factionGroup.POST("/lore", a.createLore)
		factionGroup.POST("/lore/:id", a.updateLore)
		factionGroup.DELETE("/lore/:id", a.deleteLore)
		factionGroup.POST("/members", a.createMember)
		factionGroup.DELETE("/members/:id", a.deleteMember)
		factionGroup.POST("/gallery", a.createGalleryItem)
		factionGroup.DELETE("/gallery/:id", a.deleteGalleryItem)
		factionGroup.POST("/clips", a.createClip)
		factionGroup.DELETE("/clips/:id", a.deleteClip)
		factionGroup.POST("/upload/gallery", a.uploadGalleryImage)
	}

	router.POST("/admin/upload/markdown", a.requireAuth, a.uploadMarkdownImage)

	usersGroup := router.Group("/admin/users")
	usersGroup.Use(a.requireAuth, a.requireSuperAdmin)
	{
		usersGroup.GET("/", a.listUsers)
		usersGroup.POST("/", a.saveUser)
		usersGroup.DELETE("/:id", a.deleteUser)
	}

	settingsGroup := router.Group("/admin/settings")
	settingsGroup.Use(a.requireAuth, a.requireSuperAdmin)
	{
		settingsGroup.GET("/", a.settings)
		settingsGroup.POST("/seed/:factionId", a.seedFaction)
	}
}

// requireAuth resolves the session into a profile and role, redirecting
// anonymous visitors to the login page.
func (a *AdminModule) requireAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	if userID == nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	id, ok := userID.(int)
	if !ok {
		session.Clear()
		session.Save()
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	profile, err := a.auth.ProfileByID(id)
	if err != nil {
		session.Clear()
		session.Save()
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	c.Set("profile", profile)
	c.Set("role", auth.RoleFor(profile))
	c.Next()
}

// loadFaction resolves the faction id against the static catalog and checks
// the signed-in user's edit permission.
func (a *AdminModule) loadFaction(c *gin.Context) {
	factionID := c.Param("factionId")

	faction := catalog.ByID(factionID)
	if faction == nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{"error": "Faction not found"})
		c.Abort()
		return
	}

	roleData, _ := c.Get("role")
	role := roleData.(auth.Role)
	if !role.CanEdit(faction.ID) {
		c.HTML(http.StatusForbidden, "admin_error.html", gin.H{"error": "You do not have access to this faction"})
		c.Abort()
		return
	}

	c.Set("faction", faction)
	c.Next()
}

func (a *AdminModule) requireSuperAdmin(c *gin.Context) {
	roleData, _ := c.Get("role")
	role, ok := roleData.(auth.Role)
	if !ok || !role.IsSuperAdmin {
		c.HTML(http.StatusForbidden, "admin_error.html", gin.H{"error": "Super-admin access required"})
		c.Abort()
		return
	}
	c.Next()
}

func (a *AdminModule) adminRoot(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (a *AdminModule) loginPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}

	c.HTML(http.StatusOK, "admin_login.html", gin.H{})
}

func (a *AdminModule) loginPost(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	profile, err := a.auth.Login(email, password)
	if err != nil {
		msg := "Incorrect email or password"
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("Login error for %s: %v", email, err)
			msg = "Sign-in is unavailable right now"
		}
		c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
			"error": msg,
			"email": email,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", profile.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (a *AdminModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/login")
}

// dashboard lists the factions the signed-in user may edit.
func (a *AdminModule) dashboard(c *gin.Context) {
	profileData, _ := c.Get("profile")
	roleData, _ := c.Get("role")
	role := roleData.(auth.Role)

	var editable []catalog.Faction
	for _, f := range catalog.Factions {
		if role.CanEdit(f.ID) {
			editable = append(editable, f)
		}
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"profile":  profileData,
		"role":     role,
		"factions": editable,
	})
}
