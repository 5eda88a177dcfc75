package domain

// Stage is a step of the pipeline. Stages only move forward.
type Stage int

const (
	StageIdle Stage = iota
	StageFetch
	StageExpandVariations
	StageResolveMedia
	StageLinkCategories
	StageLinkTags
	StageLinkRelated
	StageLinkGrouped
	StageNormalize
	StageEmit
	StageDone
)

var stageNames = map[Stage]string{
	StageIdle:             "idle",
	StageFetch:            "fetch",
	StageExpandVariations: "expand-variations",
	StageResolveMedia:     "resolve-media",
	StageLinkCategories:   "link-categories",
	StageLinkTags:         "link-tags",
	StageLinkRelated:      "link-related",
	StageLinkGrouped:      "link-grouped",
	StageNormalize:        "normalize",
	StageEmit:             "emit",
	StageDone:             "done",
}

// String returns the stage name.
func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Next returns the stage following s.
func (s Stage) Next() Stage {
	if s >= StageDone {
		return StageDone
	}
	return s + 1
}
