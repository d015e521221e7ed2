package planner

import "github.com/alexanderramin/studysync/internal/domain"

// Plan summaries shown after a run.
const (
	SummaryFoundation = "Foundation plan ready: push new progress"
	SummaryStrengthen = "Strengthen plan ready: mix old and new, patch the gaps"
	SummarySprint     = "Sprint plan ready: full simulation, clear the backlog"
)

// Task notes written by the planner.
const (
	NoteFoundationReview = "Foundation review"
	NoteStrengthenReview = "Strengthen-stage deep pass"
	NoteSprintReview     = "Sprint sweep"
	NoteSimulation       = "Full simulation run"
)

// Task sizes per pull.
const (
	foundationCore    = 30
	strengthenRevisit = 20
	strengthenNew     = 40
	sprintCore        = 100
	auxAmount         = 1
)

type reviewPolicy struct {
	limit  int
	target func(wrongCount int) int
	note   string
}

type stagePolicy struct {
	review  reviewPolicy
	pulls   func(r *planRun)
	summary string
}

var policies = map[domain.StudyStage]stagePolicy{
	domain.StageFoundation: {
		review: reviewPolicy{
			limit:  2,
			target: foundationReviewTarget,
			note:   NoteFoundationReview,
		},
		pulls:   foundationPulls,
		summary: SummaryFoundation,
	},
	domain.StageReview: {
		review: reviewPolicy{
			limit:  5,
			target: func(wc int) int { return max(5, wc*2) },
			note:   NoteStrengthenReview,
		},
		pulls:   strengthenPulls,
		summary: SummaryStrengthen,
	},
	domain.StageSprint: {
		review: reviewPolicy{
			limit:  10,
			target: func(int) int { return 1 },
			note:   NoteSprintReview,
		},
		pulls:   sprintPulls,
		summary: SummarySprint,
	},
}

func foundationReviewTarget(wrongCount int) int {
	if wrongCount > 0 {
		return wrongCount
	}
	return 5
}

// foundationPulls pushes new material: the day's core module from the
// primary resource plus one unit each from the secondary and tertiary.
func foundationPulls(r *planRun) {
	rules := r.gen.rules
	if res := r.resource(rules.Primary); res != nil {
		mod := res.ModuleMatching(rules.coreKeywords(r.in.Now)...)
		if mod == nil || mod.IsComplete() {
			mod = res.FirstIncomplete()
		}
		if mod != nil {
			r.add(res, mod, foundationCore, domain.TagCoreA, "")
		}
	}
	if res := r.resource(rules.Secondary); res != nil {
		if mod := res.FirstIncomplete(); mod != nil {
			r.add(res, mod, auxAmount, domain.TagAuxB, "")
		}
	}
	if res := r.resource(rules.Tertiary); res != nil {
		if mod := res.FirstIncomplete(); mod != nil {
			r.add(res, mod, auxAmount, domain.TagSideC, "")
		}
	}
}

// strengthenPulls mixes revisiting a finished module with new progress.
func strengthenPulls(r *planRun) {
	rules := r.gen.rules
	if res := r.resource(rules.Primary); res != nil {
		var mod *domain.Module
		amount := strengthenNew
		if r.gen.rnd.Float64() > 0.5 {
			if done := res.CompletedModules(); len(done) > 0 {
				mod = done[r.gen.rnd.IntN(len(done))]
				amount = strengthenRevisit
			}
		}
		if mod == nil {
			mod = res.FirstIncomplete()
		}
		if mod != nil {
			r.add(res, mod, amount, domain.TagCoreA, "")
		}
	}
	if res := r.resource(rules.Secondary); res != nil && len(res.Modules) > 0 {
		mod := res.ModuleMatching(rules.auxKeyword(r.in.Now))
		if mod == nil {
			mod = &res.Modules[0]
		}
		r.add(res, mod, auxAmount, domain.TagAuxB, "")
	}
}

// sprintPulls assigns a full simulation on any primary module, finished or not.
func sprintPulls(r *planRun) {
	res := r.resource(r.gen.rules.Primary)
	if res == nil || len(res.Modules) == 0 {
		return
	}
	mod := &res.Modules[r.gen.rnd.IntN(len(res.Modules))]
	r.add(res, mod, sprintCore, domain.TagCoreA, NoteSimulation)
}
