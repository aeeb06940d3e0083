package issue

// StageCreate describes one pipeline stage: a single environment's slice of
// the rollout. The push flow emits exactly one task per stage.
type StageCreate struct {
	EnvironmentID int64
	Name          string
	Tasks         []TaskCreate
}

// PipelineCreate describes the ordered stages of an issue's pipeline.
type PipelineCreate struct {
	Name   string
	Stages []StageCreate
}

// Stage is a persisted pipeline stage.
type Stage struct {
	id            int64
	pipelineID    int64
	environmentID int64
	name          string
	tasks         []Task
}

// ReconstructStage rebuilds a Stage from persisted state.
func ReconstructStage(id, pipelineID, environmentID int64, name string, tasks []Task) Stage {
	return Stage{
		id:            id,
		pipelineID:    pipelineID,
		environmentID: environmentID,
		name:          name,
		tasks:         tasks,
	}
}

// ID returns the stage ID.
func (s Stage) ID() int64 { return s.id }

// PipelineID returns the owning pipeline's ID.
func (s Stage) PipelineID() int64 { return s.pipelineID }

// EnvironmentID returns the environment this stage rolls out to.
func (s Stage) EnvironmentID() int64 { return s.environmentID }

// Name returns the stage name (the environment name).
func (s Stage) Name() string { return s.name }

// Tasks returns the stage's tasks.
func (s Stage) Tasks() []Task {
	result := make([]Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Pipeline is a persisted pipeline: the full rollout of one change.
type Pipeline struct {
	id     int64
	name   string
	stages []Stage
}

// ReconstructPipeline rebuilds a Pipeline from persisted state.
func ReconstructPipeline(id int64, name string, stages []Stage) Pipeline {
	return Pipeline{id: id, name: name, stages: stages}
}

// ID returns the pipeline ID.
func (p Pipeline) ID() int64 { return p.id }

// Name returns the pipeline name.
func (p Pipeline) Name() string { return p.name }

// Stages returns the pipeline's stages in rollout order.
func (p Pipeline) Stages() []Stage {
	result := make([]Stage, len(p.stages))
	copy(result, p.stages)
	return result
}
