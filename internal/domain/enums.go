package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UnitKind names what a module counts. It only affects display.
type UnitKind string

const (
	UnitQuestions UnitKind = "Questions"
	UnitSections  UnitKind = "Sections"
	UnitArticles  UnitKind = "Articles"
	UnitPages     UnitKind = "Pages"
)

// ValidUnitKinds is the canonical set of accepted unit kinds.
var ValidUnitKinds = map[UnitKind]bool{
	UnitQuestions: true, UnitSections: true, UnitArticles: true, UnitPages: true,
}

// Label returns the short counter word shown next to amounts.
func (k UnitKind) Label() string {
	switch k {
	case UnitQuestions:
		return "題"
	case UnitSections:
		return "節"
	case UnitArticles:
		return "篇"
	case UnitPages:
		return "頁"
	default:
		return "項"
	}
}

// ParseUnitKind accepts the canonical kinds case-insensitively, plus the
// legacy names Minutes and Chapters that older drafts used.
func ParseUnitKind(s string) (UnitKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "questions", "question":
		return UnitQuestions, nil
	case "sections", "section", "minutes":
		return UnitSections, nil
	case "articles", "article", "chapters":
		return UnitArticles, nil
	case "pages", "page":
		return UnitPages, nil
	}
	return "", fmt.Errorf("%w: unknown unit kind %q", ErrValidation, s)
}

// TaskTag classifies where a daily task came from.
type TaskTag string

const (
	TagCoreA   TaskTag = "CoreA"
	TagAuxB    TaskTag = "AuxB"
	TagSideC   TaskTag = "SideC"
	TagExtraE  TaskTag = "ExtraE"
	TagReviewR TaskTag = "ReviewR"
	TagManual  TaskTag = "Manual"
)

// legacyTags maps the labels written by the web version of the app.
var legacyTags = map[string]TaskTag{
	"核心 A":  TagCoreA,
	"輔助 B":  TagAuxB,
	"副線 C":  TagSideC,
	"額外充電 E": TagExtraE,
	"回鍋 R":  TagReviewR,
	"手動":    TagManual,
}

// ValidTaskTags is the canonical set of task tags.
var ValidTaskTags = map[TaskTag]bool{
	TagCoreA: true, TagAuxB: true, TagSideC: true, TagExtraE: true, TagReviewR: true, TagManual: true,
}

// ParseTaskTag resolves canonical and legacy tag labels. An empty tag is Manual.
func ParseTaskTag(s string) (TaskTag, error) {
	if s == "" {
		return TagManual, nil
	}
	if t, ok := legacyTags[s]; ok {
		return t, nil
	}
	if ValidTaskTags[TaskTag(s)] {
		return TaskTag(s), nil
	}
	return "", fmt.Errorf("%w: unknown task tag %q", ErrValidation, s)
}

func (t *TaskTag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTaskTag(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// StudyStage selects the planner policy.
type StudyStage string

const (
	StageFoundation StudyStage = "Foundation"
	// StageReview is the strengthen stage. The stored value keeps the
	// historical name.
	StageReview StudyStage = "Review"
	StageSprint StudyStage = "Sprint"
)

// AllStages lists stages in the order they are usually walked through.
var AllStages = []StudyStage{StageFoundation, StageReview, StageSprint}

func (s StudyStage) Valid() bool {
	return s == StageFoundation || s == StageReview || s == StageSprint
}

// Label is the human-facing stage name.
func (s StudyStage) Label() string {
	switch s {
	case StageFoundation:
		return "Foundation"
	case StageReview:
		return "Strengthen"
	case StageSprint:
		return "Sprint"
	default:
		return string(s)
	}
}

// ParseStudyStage accepts stage names case-insensitively; "strengthen" is an
// alias for the Review stage.
func ParseStudyStage(s string) (StudyStage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "foundation":
		return StageFoundation, nil
	case "review", "strengthen":
		return StageReview, nil
	case "sprint":
		return StageSprint, nil
	}
	return "", fmt.Errorf("%w: unknown study stage %q (want Foundation, Review or Sprint)", ErrValidation, s)
}

// String and Set let StudyStage back a command-line flag.
func (s *StudyStage) String() string {
	return string(*s)
}

func (s *StudyStage) Set(v string) error {
	parsed, err := ParseStudyStage(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s *StudyStage) Type() string {
	return "stage"
}
