package scaffold

// Stage is a step of a scaffold run.
type Stage int

const (
	StageResolvingTemplate Stage = iota
	StageInstallingTemplatePackage
	StageLoadingTemplateMetadata
	StageInstallingDependencies
	StageInstallingDevDependencies
	StageMergingManifest
	StageMaterializingFiles
	StageDone
	StageRollingBack
	StageAborted
)

var stageNames = map[Stage]string{
	StageResolvingTemplate:         "resolving template",
	StageInstallingTemplatePackage: "installing template package",
	StageLoadingTemplateMetadata:   "loading template metadata",
	StageInstallingDependencies:    "installing dependencies",
	StageInstallingDevDependencies: "installing devDependencies",
	StageMergingManifest:           "merging package.json",
	StageMaterializingFiles:        "creating files from template",
	StageDone:                      "done",
	StageRollingBack:               "rolling back",
	StageAborted:                   "aborted",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown stage"
}
