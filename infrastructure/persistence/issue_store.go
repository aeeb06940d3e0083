package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitschema/gitschema/domain/issue"
	"github.com/gitschema/gitschema/domain/store"
	"github.com/gitschema/gitschema/internal/database"
	"gorm.io/gorm"
)

// IssueStore implements issue.IssueStore using GORM.
type IssueStore struct {
	database.Repository[issue.Issue, IssueModel]
	db database.Database
}

// NewIssueStore creates a new IssueStore.
func NewIssueStore(db database.Database) IssueStore {
	return IssueStore{
		Repository: database.NewRepository[issue.Issue, IssueModel](db, IssueMapper{}, "issue"),
		db:         db,
	}
}

// Create persists the issue together with its pipeline, stages, and tasks
// in one transaction. Either the whole tree exists afterwards or none of
// it does.
func (s IssueStore) Create(ctx context.Context, create issue.IssueCreate) (issue.Issue, error) {
	model, err := database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) (IssueModel, error) {
		pipeline := PipelineModel{Name: create.Pipeline.Name}
		if err := tx.Create(&pipeline).Error; err != nil {
			return IssueModel{}, fmt.Errorf("create pipeline: %w", err)
		}

		for _, stageCreate := range create.Pipeline.Stages {
			stage := StageModel{
				PipelineID:    pipeline.ID,
				EnvironmentID: stageCreate.EnvironmentID,
				Name:          stageCreate.Name,
			}
			if err := tx.Create(&stage).Error; err != nil {
				return IssueModel{}, fmt.Errorf("create stage %q: %w", stageCreate.Name, err)
			}

			for _, taskCreate := range stageCreate.Tasks {
				kind, payload, err := taskCreate.MarshalPayload()
				if err != nil {
					return IssueModel{}, err
				}
				task := TaskModel{
					StageID:    stage.ID,
					InstanceID: taskCreate.InstanceID,
					DatabaseID: taskCreate.DatabaseID,
					Name:       taskCreate.Name,
					Status:     string(taskCreate.Status),
					Kind:       string(kind),
					Payload:    payload,
				}
				if err := tx.Create(&task).Error; err != nil {
					return IssueModel{}, fmt.Errorf("create task %q: %w", taskCreate.Name, err)
				}
			}
		}

		model := IssueModel{
			ProjectID:   create.ProjectID,
			PipelineID:  pipeline.ID,
			Name:        create.Name,
			Status:      string(issue.IssueOpen),
			Kind:        string(create.Kind),
			Description: create.Description,
			CreatorID:   create.CreatorID,
			AssigneeID:  create.AssigneeID,
		}
		if err := tx.Create(&model).Error; err != nil {
			return IssueModel{}, fmt.Errorf("create issue: %w", err)
		}
		return model, nil
	})
	if err != nil {
		return issue.Issue{}, err
	}
	return IssueMapper{}.ToDomain(model), nil
}

// Get retrieves an issue by ID.
func (s IssueStore) Get(ctx context.Context, id int64) (issue.Issue, error) {
	return s.FindOne(ctx, store.WithID(id))
}

// Pipeline loads the full pipeline tree owned by an issue.
func (s IssueStore) Pipeline(ctx context.Context, pipelineID int64) (issue.Pipeline, error) {
	var pipelineModel PipelineModel
	if err := s.db.Session(ctx).First(&pipelineModel, pipelineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return issue.Pipeline{}, fmt.Errorf("pipeline %d: %w", pipelineID, database.ErrNotFound)
		}
		return issue.Pipeline{}, fmt.Errorf("find pipeline %d: %w", pipelineID, err)
	}

	var stageModels []StageModel
	if err := s.db.Session(ctx).Where("pipeline_id = ?", pipelineID).Order("id ASC").Find(&stageModels).Error; err != nil {
		return issue.Pipeline{}, fmt.Errorf("find stages: %w", err)
	}

	stages := make([]issue.Stage, 0, len(stageModels))
	for _, sm := range stageModels {
		var taskModels []TaskModel
		if err := s.db.Session(ctx).Where("stage_id = ?", sm.ID).Order("id ASC").Find(&taskModels).Error; err != nil {
			return issue.Pipeline{}, fmt.Errorf("find tasks: %w", err)
		}
		tasks := make([]issue.Task, 0, len(taskModels))
		for _, tm := range taskModels {
			tasks = append(tasks, issue.ReconstructTask(
				tm.ID, tm.StageID, tm.InstanceID, tm.DatabaseID,
				tm.Name, issue.Status(tm.Status), issue.Kind(tm.Kind), tm.Payload,
			))
		}
		stages = append(stages, issue.ReconstructStage(sm.ID, sm.PipelineID, sm.EnvironmentID, sm.Name, tasks))
	}

	return issue.ReconstructPipeline(pipelineModel.ID, pipelineModel.Name, stages), nil
}
