package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studysync/internal/domain"
)

// resolvePrefix finds the single item whose id equals input or starts with
// it. An exact match always wins over prefix matches.
func resolvePrefix[T any](kind string, items []T, id func(*T) string, input string) (*T, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%s ID is required", kind)
	}
	var matches []*T
	for i := range items {
		itemID := id(&items[i])
		if itemID == input {
			return &items[i], nil
		}
		if strings.HasPrefix(itemID, input) {
			matches = append(matches, &items[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no %s matches %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d %ss, use a longer prefix", input, len(matches), kind)
	}
}

// resolveResource accepts an id prefix or, failing that, a fragment of the
// resource name.
func resolveResource(state *domain.AppState, input string) (*domain.Resource, error) {
	res, err := resolvePrefix("resource", state.Resources, func(r *domain.Resource) string { return r.ID }, input)
	if err == nil {
		return res, nil
	}
	if byName := state.ResourceNamed(input); byName != nil {
		return byName, nil
	}
	return nil, err
}

func resolveModule(res *domain.Resource, input string) (*domain.Module, error) {
	return resolvePrefix("module", res.Modules, func(m *domain.Module) string { return m.ID }, input)
}

func resolveTask(state *domain.AppState, input string) (*domain.DailyTask, error) {
	return resolvePrefix("task", state.DailyPlan, func(t *domain.DailyTask) string { return t.ID }, input)
}
