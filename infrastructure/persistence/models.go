package persistence

import "time"

// ProjectModel is the GORM model for projects.
type ProjectModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Key       string `gorm:"column:key;uniqueIndex"`
	Name      string `gorm:"column:name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for ProjectModel.
func (ProjectModel) TableName() string { return "projects" }

// EnvironmentModel is the GORM model for environments.
type EnvironmentModel struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string `gorm:"column:name;uniqueIndex"`
	DisplayOrder int    `gorm:"column:display_order"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for EnvironmentModel.
func (EnvironmentModel) TableName() string { return "environments" }

// InstanceModel is the GORM model for database instances.
type InstanceModel struct {
	ID            int64  `gorm:"column:id;primaryKey;autoIncrement"`
	EnvironmentID int64  `gorm:"column:environment_id;index"`
	Name          string `gorm:"column:name"`
	Host          string `gorm:"column:host"`
	Port          int    `gorm:"column:port"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for InstanceModel.
func (InstanceModel) TableName() string { return "instances" }

// DatabaseModel is the GORM model for databases.
type DatabaseModel struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID  int64  `gorm:"column:project_id;index"`
	InstanceID int64  `gorm:"column:instance_id;index"`
	Name       string `gorm:"column:name;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for DatabaseModel.
func (DatabaseModel) TableName() string { return "databases" }

// PolicyModel is the GORM model for per-environment policies.
type PolicyModel struct {
	ID            int64  `gorm:"column:id;primaryKey;autoIncrement"`
	EnvironmentID int64  `gorm:"column:environment_id;uniqueIndex:idx_policies_env_type"`
	Type          string `gorm:"column:type;uniqueIndex:idx_policies_env_type"`
	Value         string `gorm:"column:value"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for PolicyModel.
func (PolicyModel) TableName() string { return "policies" }

// RepositoryModel is the GORM model for webhook-linked repository
// configurations.
type RepositoryModel struct {
	ID                 int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID          int64  `gorm:"column:project_id;index"`
	Provider           string `gorm:"column:provider"`
	InstanceURL        string `gorm:"column:instance_url"`
	ExternalID         string `gorm:"column:external_id"`
	Name               string `gorm:"column:name"`
	FullPath           string `gorm:"column:full_path"`
	WebURL             string `gorm:"column:web_url"`
	BranchFilter       string `gorm:"column:branch_filter"`
	BaseDirectory      string `gorm:"column:base_directory"`
	FilePathTemplate   string `gorm:"column:file_path_template"`
	SchemaPathTemplate string `gorm:"column:schema_path_template"`
	WebhookEndpointID  string `gorm:"column:webhook_endpoint_id;uniqueIndex"`
	WebhookSecret      string `gorm:"column:webhook_secret"`
	AccessToken        string `gorm:"column:access_token"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName returns the table name for RepositoryModel.
func (RepositoryModel) TableName() string { return "repositories" }

// PipelineModel is the GORM model for pipelines.
type PipelineModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string `gorm:"column:name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for PipelineModel.
func (PipelineModel) TableName() string { return "pipelines" }

// StageModel is the GORM model for pipeline stages.
type StageModel struct {
	ID            int64  `gorm:"column:id;primaryKey;autoIncrement"`
	PipelineID    int64  `gorm:"column:pipeline_id;index"`
	EnvironmentID int64  `gorm:"column:environment_id"`
	Name          string `gorm:"column:name"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for StageModel.
func (StageModel) TableName() string { return "stages" }

// TaskModel is the GORM model for tasks.
type TaskModel struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	StageID    int64  `gorm:"column:stage_id;index"`
	InstanceID int64  `gorm:"column:instance_id"`
	DatabaseID int64  `gorm:"column:database_id"`
	Name       string `gorm:"column:name"`
	Status     string `gorm:"column:status"`
	Kind       string `gorm:"column:kind"`
	Payload    []byte `gorm:"column:payload;type:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for TaskModel.
func (TaskModel) TableName() string { return "tasks" }

// IssueModel is the GORM model for issues.
type IssueModel struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ProjectID   int64  `gorm:"column:project_id;index"`
	PipelineID  int64  `gorm:"column:pipeline_id"`
	Name        string `gorm:"column:name"`
	Status      string `gorm:"column:status"`
	Kind        string `gorm:"column:kind"`
	Description string `gorm:"column:description"`
	CreatorID   int64  `gorm:"column:creator_id"`
	AssigneeID  int64  `gorm:"column:assignee_id"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for IssueModel.
func (IssueModel) TableName() string { return "issues" }

// ActivityModel is the GORM model for audit activities.
type ActivityModel struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CreatorID   int64  `gorm:"column:creator_id"`
	ContainerID int64  `gorm:"column:container_id;index"`
	Type        string `gorm:"column:type"`
	Level       string `gorm:"column:level"`
	Comment     string `gorm:"column:comment"`
	Payload     string `gorm:"column:payload"`
	CreatedAt   time.Time
}

// TableName returns the table name for ActivityModel.
func (ActivityModel) TableName() string { return "activities" }
