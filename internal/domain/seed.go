package domain

// Seed resource ids. The planner finds its designated resources by name, so
// these only matter for a fresh install.
const (
	SeedPrimaryID   = "app-yiqikao"
	SeedSecondaryID = "app-fenbi"
	SeedTertiaryID  = "app-changyan"
)

// PastelColors is the palette new modules draw from.
var PastelColors = []string{
	"#fca5a5", "#fdba74", "#fcd34d", "#86efac", "#67e8f9", "#93c5fd", "#c4b5fd", "#f9a8d4",
}

// SeedResources returns a fresh copy of the built-in resources used when no
// saved resources exist.
func SeedResources() []Resource {
	return []Resource{
		{
			ID:          SeedPrimaryID,
			Name:        "一起考教師",
			Description: "核心題庫 (Slot A)",
			IsSystem:    true,
			Modules: []Module{
				{ID: "m-k1", Name: "科目一：綜合素質", Kind: UnitQuestions, TotalItems: 2360, Color: "#fb7185"},
				{ID: "m-k2", Name: "科目二：教育教學", Kind: UnitQuestions, TotalItems: 3826, Color: "#f472b6"},
			},
		},
		{
			ID:          SeedSecondaryID,
			Name:        "粉筆 App",
			Description: "視頻與專項 (Slot B)",
			IsSystem:    true,
			Modules: []Module{
				{ID: "m-fb-video", Name: "必背考點視頻課", Kind: UnitSections, TotalItems: 49, Color: "#60a5fa"},
				{ID: "m-fb-law", Name: "法律法規專項", Kind: UnitQuestions, TotalItems: 1368, Color: "#818cf8"},
				{ID: "m-fb-read", Name: "閱讀理解專項", Kind: UnitArticles, TotalItems: 20, Color: "#a78bfa"},
			},
		},
		{
			ID:          SeedTertiaryID,
			Name:        "暢言普通話",
			Description: "證書備考 (Slot C)",
			IsSystem:    true,
			Modules: []Module{
				{ID: "m-cy-read", Name: "短文朗讀", Kind: UnitArticles, TotalItems: 50, Color: "#34d399"},
				{ID: "m-cy-speak", Name: "命題說話", Kind: UnitSections, TotalItems: 50, Color: "#2dd4bf"},
				{ID: "m-cy-base", Name: "聲母韻母正音", Kind: UnitSections, TotalItems: 60, Color: "#10b981"},
			},
		},
	}
}
