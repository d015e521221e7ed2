package importer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/studysync/internal/domain"
)

const (
	FormatVersion = "1.0"
	Platform      = "StudySync CLI"
)

// Meta describes an export file.
type Meta struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Platform   string    `json:"platform"`
}

// Envelope is the export layout. Bare AppState objects are accepted on
// import as well.
type Envelope struct {
	Meta Meta             `json:"meta"`
	Data *domain.AppState `json:"data"`
}

// Export serializes state inside an envelope stamped with at.
func Export(state *domain.AppState, at time.Time) ([]byte, error) {
	data := state.Clone()
	data.ClearTipLoading()
	if data.Resources == nil {
		data.Resources = []domain.Resource{}
	}
	env := Envelope{
		Meta: Meta{Version: FormatVersion, ExportedAt: at.UTC(), Platform: Platform},
		Data: data,
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return out, nil
}
