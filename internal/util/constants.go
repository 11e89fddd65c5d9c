package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// DefaultUserID 未携带 userId 参数时使用的默认用户
const DefaultUserID = "user-1"

// 技能类别白名单
var SkillCategories = []string{
	"frontend", "backend", "database", "devops", "ai-ml", "mobile", "security",
}

func IsValidCategory(category string) bool {
	for _, c := range SkillCategories {
		if c == category {
			return true
		}
	}
	return false
}
