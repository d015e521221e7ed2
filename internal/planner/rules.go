package planner

import "time"

// Rules names the resources and modules the planner looks for. Every match
// is "name contains fragment", first match in list order.
type Rules struct {
	Primary   string `mapstructure:"primary" validate:"required"`
	Secondary string `mapstructure:"secondary" validate:"required"`
	Tertiary  string `mapstructure:"tertiary" validate:"required"`

	// Core module on odd and even days of the month.
	OddDayKeywords  []string `mapstructure:"odd_day_keywords" validate:"min=1,dive,required"`
	EvenDayKeywords []string `mapstructure:"even_day_keywords" validate:"min=1,dive,required"`

	// Strengthen-stage aux module: VideoKeyword on VideoWeekdays, else DrillKeyword.
	VideoKeyword  string         `mapstructure:"video_keyword" validate:"required"`
	DrillKeyword  string         `mapstructure:"drill_keyword" validate:"required"`
	VideoWeekdays []time.Weekday `mapstructure:"video_weekdays" validate:"dive,gte=0,lte=6"`
}

// DefaultRules matches the built-in seed resources.
func DefaultRules() Rules {
	return Rules{
		Primary:         "一起考",
		Secondary:       "粉筆",
		Tertiary:        "暢言",
		OddDayKeywords:  []string{"科目一", "綜合"},
		EvenDayKeywords: []string{"科目二", "教育"},
		VideoKeyword:    "視頻",
		DrillKeyword:    "專項",
		VideoWeekdays:   []time.Weekday{time.Monday, time.Wednesday, time.Friday},
	}
}

func (r Rules) coreKeywords(now time.Time) []string {
	if now.Day()%2 != 0 {
		return r.OddDayKeywords
	}
	return r.EvenDayKeywords
}

func (r Rules) auxKeyword(now time.Time) string {
	for _, d := range r.VideoWeekdays {
		if now.Weekday() == d {
			return r.VideoKeyword
		}
	}
	return r.DrillKeyword
}
