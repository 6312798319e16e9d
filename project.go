package orderly

import "context"

// Project is a unit of work orders are filed against. Projects belong to
// an organization.
type Project struct {
	ID             ID     `json:"id,omitempty"`
	GUID           string `json:"guid"`
	Name           string `json:"name"`
	OrganizationID ID     `json:"organization_id"`
}

// ops for project errors and op logs.
const (
	OpFindProjectByID = "FindProjectByID"
	OpFindProjects    = "FindProjects"
	OpCreateProject   = "CreateProject"
	OpDeleteProject   = "DeleteProject"
)

// ProjectService represents a service for managing project data.
type ProjectService interface {
	// Returns a single project by ID.
	FindProjectByID(ctx context.Context, id ID) (*Project, error)

	// Returns projects matching filter.
	FindProjects(ctx context.Context, filter ProjectFilter) ([]*Project, error)

	// Creates a new project and sets p.ID and p.GUID.
	CreateProject(ctx context.Context, p *Project) error

	// Removes a project by ID.
	DeleteProject(ctx context.Context, id ID) error
}

// ProjectFilter restricts the set of returned projects.
type ProjectFilter struct {
	OrganizationID *ID
	GUID           *string
}
