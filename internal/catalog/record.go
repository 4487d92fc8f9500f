package catalog

// AgentRecord describes one external agent project in the catalog.
type AgentRecord struct {
	Name           string   `json:"name"`
	Purpose        string   `json:"purpose"`
	RepositoryURL  string   `json:"repositoryUrl,omitempty"`
	PaperTitle     *string  `json:"paperTitle,omitempty"` // nil when the source marks the paper absent
	ReferenceLinks []string `json:"referenceLinks,omitempty"`
}

// HasPaper reports whether the record has an associated paper.
func (r AgentRecord) HasPaper() bool {
	return r.PaperTitle != nil
}
