package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studysync/internal/domain"
)

// Input is everything a plan run looks at. Nothing in it is modified.
type Input struct {
	Resources []domain.Resource
	Queue     domain.ReviewQueue
	Stage     domain.StudyStage
	Now       time.Time
}

// Plan is the outcome of one run. Tasks are new and unsaved;
// ConsumedReviewIDs must be drained from the queue in the same commit.
type Plan struct {
	Stage             domain.StudyStage
	Tasks             []domain.DailyTask
	ConsumedReviewIDs []string
	Summary           string
}

// ReviewCount returns how many tasks came from the review queue.
func (p Plan) ReviewCount() int {
	return len(p.ConsumedReviewIDs)
}

// Generator builds daily plans. The zero value is not usable; call
// NewGenerator.
type Generator struct {
	rules Rules
	rnd   RandomSource
	newID func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandom replaces the random source.
func WithRandom(r RandomSource) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithIDs replaces the task id generator.
func WithIDs(fn func() string) Option {
	return func(g *Generator) { g.newID = fn }
}

func NewGenerator(rules Rules, opts ...Option) *Generator {
	g := &Generator{
		rules: rules,
		rnd:   SystemRandom(),
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Rules returns the rules the generator was built with.
func (g *Generator) Rules() Rules { return g.rules }

// Generate runs the policy for in.Stage. Lookups that fail skip their pull
// silently, so an empty plan is a valid result.
func (g *Generator) Generate(in Input) (Plan, error) {
	policy, ok := policies[in.Stage]
	if !ok {
		return Plan{}, fmt.Errorf("%w: unknown study stage %q", domain.ErrValidation, in.Stage)
	}
	run := &planRun{
		gen:   g,
		in:    in,
		view:  &domain.AppState{Resources: in.Resources},
		tasks: []domain.DailyTask{},
	}
	run.pullReviews(policy.review)
	policy.pulls(run)
	return Plan{
		Stage:             in.Stage,
		Tasks:             run.tasks,
		ConsumedReviewIDs: run.consumed,
		Summary:           policy.summary,
	}, nil
}

// planRun accumulates tasks for a single Generate call.
type planRun struct {
	gen      *Generator
	in       Input
	view     *domain.AppState
	tasks    []domain.DailyTask
	consumed []string
}

func (r *planRun) add(res *domain.Resource, mod *domain.Module, amount int, tag domain.TaskTag, note string) *domain.DailyTask {
	t := domain.NewTask(r.gen.newID(), res, mod, amount, tag, r.in.Now)
	t.Note = note
	r.tasks = append(r.tasks, t)
	return &r.tasks[len(r.tasks)-1]
}

func (r *planRun) pullReviews(p reviewPolicy) {
	for _, item := range r.in.Queue.PeekBatch(p.limit) {
		res, mod := r.view.FindModule(item.ResourceID, item.ModuleID)
		if mod == nil {
			continue
		}
		t := r.add(res, mod, p.target(item.WrongCount), domain.TagReviewR, p.note)
		t.SourceKnowledgePoint = item.KnowledgePoint
		r.consumed = append(r.consumed, item.ID)
	}
}

func (r *planRun) resource(fragment string) *domain.Resource {
	return domain.ResourceNamed(r.in.Resources, fragment)
}
