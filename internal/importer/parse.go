package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/studysync/internal/domain"
	"github.com/alexanderramin/studysync/internal/validation"
)

var (
	ErrInvalidFormat = errors.New("invalid format: not a valid JSON save code")
	ErrMissingData   = errors.New("invalid save code: missing resources or daily plan")
)

var validate = validation.MustNew("json")

// Parse decodes a save code, enveloped or bare, into a validated state.
// A missing review queue reads as empty and a missing or unknown stage as
// Foundation. Legacy unit kinds are normalized before validation.
func Parse(raw []byte) (*domain.AppState, error) {
	fields, err := probe(raw)
	if err != nil {
		return nil, err
	}
	if isEnvelope(fields) {
		raw = fields["data"]
		if fields, err = probe(raw); err != nil {
			return nil, err
		}
	}
	if !present(fields, "resources") || !present(fields, "dailyPlan") {
		return nil, ErrMissingData
	}

	var doc struct {
		Resources   []domain.Resource  `json:"resources"`
		DailyPlan   []domain.DailyTask `json:"dailyPlan"`
		ReviewQueue domain.ReviewQueue `json:"reviewQueue"`
		StudyStage  string             `json:"studyStage"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	state := &domain.AppState{
		Resources:   doc.Resources,
		DailyPlan:   doc.DailyPlan,
		ReviewQueue: doc.ReviewQueue,
		StudyStage:  domain.StageFoundation,
	}
	if stage, err := domain.ParseStudyStage(doc.StudyStage); err == nil {
		state.StudyStage = stage
	}
	if state.ReviewQueue == nil {
		state.ReviewQueue = domain.ReviewQueue{}
	}
	normalizeKinds(state.Resources)

	if err := validate.Struct(state); err != nil {
		return nil, fmt.Errorf("invalid save code: %w", err)
	}
	state.ClearTipLoading()
	return state, nil
}

func probe(raw []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, ErrInvalidFormat
	}
	return fields, nil
}

func isEnvelope(fields map[string]json.RawMessage) bool {
	return present(fields, "meta") && present(fields, "data")
}

func present(fields map[string]json.RawMessage, key string) bool {
	v, ok := fields[key]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func normalizeKinds(resources []domain.Resource) {
	for i := range resources {
		for j := range resources[i].Modules {
			m := &resources[i].Modules[j]
			if m.Kind == "" {
				m.Kind = domain.UnitQuestions
				continue
			}
			if k, err := domain.ParseUnitKind(string(m.Kind)); err == nil {
				m.Kind = k
			}
		}
	}
}
