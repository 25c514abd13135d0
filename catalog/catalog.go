package catalog

// Static faction catalog. This is the seed data for every faction page; the
// admin console layers a FactionOverlay on top of it but never mutates it.

type FactionType string

const (
	TypeMC         FactionType = "mc"
	TypeRacing     FactionType = "racing"
	TypeGang       FactionType = "gang"
	TypeMafia      FactionType = "mafia"
	TypeYakuza     FactionType = "yakuza"
	TypeClassified FactionType = "classified"
)

type Faction struct {
	ID            string
	Name          string
	Tagline       string
	Type          FactionType
	PrimaryColor  string
	AccentColor   string
	GradientFrom  string
	GradientTo    string
	Description   string
	Logo          string
	FeaturedImage string
}

var Factions = []Faction{
	{
		ID:            "redacted",
		Name:          "[REDACTED]",
		Tagline:       "Chaos Is Inevitable. We Control It.",
		Type:          TypeClassified,
		PrimaryColor:  "#dc2626",
		AccentColor:   "#000000",
		GradientFrom:  "#18181b",
		GradientTo:    "#09090b",
		Description:   "Forged from the ashes of gang wars and burned bridges. They came together not out of loyalty to a neighborhood, but because they recognized that together, they could rewrite the rules.",
		Logo:          "/public/factions/redacted-logo.png",
		FeaturedImage: "https://images.unsplash.com/photo-1514539079130-25950c84af65?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "pale-riders",
		Name:          "Pale Riders MC",
		Tagline:       "Respect Gets Respect",
		Type:          TypeMC,
		PrimaryColor:  "#2563eb",
		AccentColor:   "#ffffff",
		GradientFrom:  "#1e40af",
		GradientTo:    "#172554",
		Description:   "Steel thunder echoed down the back roads as the Northside Chapter rolled into town. We didn't come for the spotlight. We came to ride, build, and claim our space - one mile, one deal, one earned name at a time.",
		Logo:          "/public/factions/paleriders-logo.png",
		FeaturedImage: "https://images.unsplash.com/photo-1558981403-c5f91cbba527?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "iron-reapers",
		Name:          "Iron Reapers MC",
		Tagline:       "Rust Never Sleeps",
		Type:          TypeMC,
		PrimaryColor:  "#ea580c",
		AccentColor:   "#431407",
		GradientFrom:  "#c2410c",
		GradientTo:    "#7c2d12",
		Description:   "Born from the rust and iron of the industrial wasteland. Forged in fire.",
		FeaturedImage: "https://images.unsplash.com/photo-1471466054146-e71bcc0d2bb2?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "blackout",
		Name:          "Blackout",
		Tagline:       "When The Lights Go Out",
		Type:          TypeRacing,
		PrimaryColor:  "#06b6d4",
		AccentColor:   "#0a0a0a",
		GradientFrom:  "#0891b2",
		GradientTo:    "#164e63",
		Description:   "The streets belong to us after dark. Speed is life. Hesitation is death.",
		FeaturedImage: "https://images.unsplash.com/photo-1605559424843-9e4c228bf1c2?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "souls-of-anarchy",
		Name:          "Souls of Anarchy",
		Tagline:       "Chaos Is Freedom",
		Type:          TypeGang,
		PrimaryColor:  "#ef4444",
		AccentColor:   "#fef2f2",
		GradientFrom:  "#dc2626",
		GradientTo:    "#7f1d1d",
		Description:   "We reject your order. We embrace the chaos. In anarchy, we find our true selves.",
		FeaturedImage: "https://images.unsplash.com/photo-1496412705862-e0088f16f791?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "shadows",
		Name:          "Shadows",
		Tagline:       "Unseen. Unheard. Unforgotten.",
		Type:          TypeGang,
		PrimaryColor:  "#7c3aed",
		AccentColor:   "#0f0f0f",
		GradientFrom:  "#6d28d9",
		GradientTo:    "#2e1065",
		Description:   "We move in silence. We strike from darkness. You will never see us coming.",
		FeaturedImage: "https://images.unsplash.com/photo-1500462859194-845728a71f01?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "odins-chosen",
		Name:          "Odin's Chosen",
		Tagline:       "Valhalla Awaits",
		Type:          TypeGang,
		PrimaryColor:  "#eab308",
		AccentColor:   "#3b82f6",
		GradientFrom:  "#ca8a04",
		GradientTo:    "#422006",
		Description:   "Warriors blessed by the Allfather. We fight with honor, we die with glory.",
		Logo:          "/public/factions/odins-chosen-logo.png",
		FeaturedImage: "https://images.unsplash.com/photo-1533154683836-84ea7a0bc310?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "gearhead-society",
		Name:          "Gearhead Society",
		Tagline:       "Built Different",
		Type:          TypeRacing,
		PrimaryColor:  "#f97316",
		AccentColor:   "#18181b",
		GradientFrom:  "#ea580c",
		GradientTo:    "#431407",
		Description:   "Grease runs in our veins. Every engine tells a story. Every ride is a masterpiece.",
		FeaturedImage: "https://images.unsplash.com/photo-1486262715619-67b85e0b08d3?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "black-mamba",
		Name:          "Black Mamba",
		Tagline:       "One Bite Is All It Takes",
		Type:          TypeGang,
		PrimaryColor:  "#22c55e",
		AccentColor:   "#0a0a0a",
		GradientFrom:  "#16a34a",
		GradientTo:    "#14532d",
		Description:   "Silent. Deadly. Vengeful. Cross us once, and you will never cross anyone again.",
		FeaturedImage: "https://images.unsplash.com/photo-1549465220-1d8c9d9c4709?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "angels",
		Name:          "Angels",
		Tagline:       "Heaven Has No Mercy",
		Type:          TypeGang,
		PrimaryColor:  "#ec4899",
		AccentColor:   "#ffffff",
		GradientFrom:  "#db2777",
		GradientTo:    "#831843",
		Description:   "Do not be fooled by the name. We are the fallen. And we have risen.",
		Logo:          "/public/factions/angels-logo.png",
		FeaturedImage: "https://images.unsplash.com/photo-1531267063023-ec0d1bd991dd?auto=format&fit=crop&q=80&w=1920",
	},
	{
		ID:            "los-santos-mob",
		Name:          "Los Santos Mob",
		Tagline:       "Business Over Bloodshed",
		Type:          TypeMafia,
		PrimaryColor:  "#8b7355",
		AccentColor:   "#c4a574",
		GradientFrom:  "#1a1816",
		GradientTo:    "#0d0c0b",
		Description:   "The MOB was quietly growing, stacking numbers with known, money driven shooters. Guys with reputations. Guys who didn't talk much, but everyone knew they'd stand shoulder to shoulder when it mattered.",
		Logo:          "/public/factions/los-santos-mob-logo.png",
		FeaturedImage: "/public/factions/los-santos-mob-logo.png",
	},
	{
		ID:            "mujou-kai",
		Name:          "Mujō-Kai",
		Tagline:       "無常 - Nothing Lasts. Not Even You.",
		Type:          TypeYakuza,
		PrimaryColor:  "#d4a574",
		AccentColor:   "#1a1a1a",
		GradientFrom:  "#a67c52",
		GradientTo:    "#0d0d0d",
		Description:   "Like ash settling after a fire, the Mujō-Kai coalesced into a new, darker shape. They do not build empires to be toppled - they become a directed current within the chaos. Their doctrine is understood in silence: become the agent of impermanence for others, while structuring oneself to flow with it.",
		Logo:          "/public/factions/mujou-kai-logo.png",
		FeaturedImage: "/public/factions/mujou-kai-logo.png",
	},
}

func ByID(id string) *Faction {
	for i := range Factions {
		if Factions[i].ID == id {
			return &Factions[i]
		}
	}
	return nil
}

func ByType(t FactionType) []Faction {
	var out []Faction
	for _, f := range Factions {
		if f.Type == t {
			out = append(out, f)
		}
	}
	return out
}
