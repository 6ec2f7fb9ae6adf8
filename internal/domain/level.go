package domain

// MaxLevel is the terminal level; ascension is unavailable beyond it.
const MaxLevel = 10

// SkillPathUnlockLevel is the level at which cosmetic skill paths open.
const SkillPathUnlockLevel = 3

// Realms group levels into narrative stages
const (
	RealmSprout  = "萌芽期"
	RealmBloom   = "花期"
	RealmHarvest = "果实期"
)

// LevelInfo describes one row of the level table.
// RequiredInspiration is the progress needed to leave this level for the next one.
type LevelInfo struct {
	Level               int      `json:"level"`
	Title               string   `json:"title"`
	TitleEN             string   `json:"title_en"`
	Realm               string   `json:"realm"`
	RequiredInspiration int      `json:"required_inspiration"`
	Exam                string   `json:"exam"`
	Perks               []string `json:"perks"`
}

// DefaultLevels is the canonical level table used for seeding and as a fallback.
var DefaultLevels = []LevelInfo{
	{Level: 1, Title: "钩针初心者", TitleEN: "Novice Crocheter", Realm: RealmSprout, RequiredInspiration: 100,
		Exam: "完成第一件小物：一枚杯垫", Perks: []string{"新手手记"}},
	{Level: 2, Title: "见习编织者", TitleEN: "Apprentice Weaver", Realm: RealmSprout, RequiredInspiration: 600,
		Exam: "独立完成一只玩偶的头部", Perks: []string{"解锁赏金任务"}},
	{Level: 3, Title: "针法学徒", TitleEN: "Stitch Apprentice", Realm: RealmSprout, RequiredInspiration: 2000,
		Exam: "掌握三种以上针法", Perks: []string{"解锁技能流派"}},
	{Level: 4, Title: "织梦匠人", TitleEN: "Dream Artisan", Realm: RealmBloom, RequiredInspiration: 5000,
		Exam: "设计并完成原创小作品", Perks: []string{"解锁里程碑任务"}},
	{Level: 5, Title: "花语织者", TitleEN: "Floral Weaver", Realm: RealmBloom, RequiredInspiration: 12000,
		Exam: "完成一束钩织花束", Perks: []string{"专属配色"}},
	{Level: 6, Title: "结界守护者", TitleEN: "Ward Keeper", Realm: RealmBloom, RequiredInspiration: 25000,
		Exam: "指导一位新人完成作品", Perks: []string{"工坊优先预约"}},
	{Level: 7, Title: "灵感行者", TitleEN: "Inspiration Walker", Realm: RealmHarvest, RequiredInspiration: 50000,
		Exam: "完成大型挂毯作品", Perks: []string{"限定材料包"}},
	{Level: 8, Title: "织梦导师", TitleEN: "Dream Mentor", Realm: RealmHarvest, RequiredInspiration: 80000,
		Exam: "主持一次工坊课程", Perks: []string{"导师徽章"}},
	{Level: 9, Title: "编织宗师", TitleEN: "Weaving Master", Realm: RealmHarvest, RequiredInspiration: 120000,
		Exam: "完成年度代表作", Perks: []string{"作品展出"}},
	{Level: 10, Title: "织梦者", TitleEN: "Dreamweaver", Realm: RealmHarvest, RequiredInspiration: 999999,
		Exam: "", Perks: []string{"传说称号"}},
}

// SkillPath is a cosmetic specialisation unlocked by level.
type SkillPath struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	MinLevel int    `json:"min_level"`
}

// SkillPaths lists every cosmetic path in display order.
var SkillPaths = []SkillPath{
	{Key: "beast", Title: "御兽师", MinLevel: SkillPathUnlockLevel},
	{Key: "armor", Title: "织造甲士", MinLevel: SkillPathUnlockLevel},
	{Key: "botanist", Title: "花灵", MinLevel: SkillPathUnlockLevel},
}

// UnlockedSkillPaths returns the skill paths available at the given level.
func UnlockedSkillPaths(level int) []SkillPath {
	paths := make([]SkillPath, 0, len(SkillPaths))
	for _, p := range SkillPaths {
		if level >= p.MinLevel {
			paths = append(paths, p)
		}
	}
	return paths
}

// FindLevel returns the row for level from table, or false if absent.
func FindLevel(table []LevelInfo, level int) (LevelInfo, bool) {
	for _, l := range table {
		if l.Level == level {
			return l, true
		}
	}
	return LevelInfo{}, false
}

// AscensionStatus is the read model behind the ascension screen.
type AscensionStatus struct {
	Level       int         `json:"level"`
	Current     LevelInfo   `json:"current"`
	Next        *LevelInfo  `json:"next,omitempty"`
	Inspiration int         `json:"inspiration"`
	Threshold   int         `json:"threshold"`
	Eligible    bool        `json:"eligible"`
	Shortfall   int         `json:"shortfall"`
	AtMaxLevel  bool        `json:"at_max_level"`
	SkillPaths  []SkillPath `json:"skill_paths"`
}

// AscensionResult is returned after a successful ascension.
type AscensionResult struct {
	PreviousLevel  int              `json:"previous_level"`
	NewLevel       int              `json:"new_level"`
	NewlyUnlocked  []SkillPath      `json:"newly_unlocked,omitempty"`
	Status         *AscensionStatus `json:"status"`
	ExamArtifactID string           `json:"exam_artifact_id,omitempty"`
}
