package fetcher

import (
	"encoding/json"
	"strings"
)

// IndependentOrg is the organization recorded for models whose id carries no
// "org/" prefix.
const IndependentOrg = "independent"

// Record is the normalized shape every search result is reduced to. Field
// names in JSON output match the CSV column names.
type Record struct {
	ModelName       string `json:"model_name"`
	Task            string `json:"task"`
	OrganizationURL string `json:"organization_url"`
	FullModelID     string `json:"full_model_id"`
	Organization    string `json:"organization"`
	Downloads       int    `json:"downloads"`
	Likes           int    `json:"likes"`
}

// hubModel is the subset of a /api/models list element the normalizer reads.
type hubModel struct {
	ID          string `json:"id"`
	ModelID     string `json:"modelId"`
	PipelineTag string `json:"pipeline_tag"`
	Downloads   int    `json:"downloads"`
	Likes       int    `json:"likes"`
}

func (m hubModel) identifier() string {
	if id := strings.TrimSpace(m.ID); id != "" {
		return id
	}
	return strings.TrimSpace(m.ModelID)
}

// normalizeRecord maps one upstream model onto a Record. The second return
// value is false when the model has no identifier at all; such entries are
// dropped without a log line.
func normalizeRecord(m hubModel) (Record, bool) {
	id := m.identifier()
	if id == "" {
		return Record{}, false
	}

	rec := Record{
		FullModelID: id,
		Downloads:   m.Downloads,
		Likes:       m.Likes,
	}

	if org, name, found := strings.Cut(id, "/"); found {
		rec.Organization = org
		rec.ModelName = name
		rec.OrganizationURL = "huggingface.co/" + org
	} else {
		rec.Organization = IndependentOrg
		rec.ModelName = id
		rec.OrganizationURL = "huggingface.co"
	}

	rec.Task = strings.TrimSpace(m.PipelineTag)
	if rec.Task == "" {
		rec.Task = "other"
	}

	return rec, true
}

// decodeHubModel unmarshals one raw list element.
func decodeHubModel(raw json.RawMessage) (hubModel, error) {
	var m hubModel
	err := json.Unmarshal(raw, &m)
	return m, err
}
