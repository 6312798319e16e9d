package orderly

import "context"

// Organization is a customer organization. Its slug doubles as the
// tenant identifier used by the tenancy subsystem.
type Organization struct {
	ID   ID     `json:"id,omitempty"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ops for organization errors and op logs.
const (
	OpFindOrganizationByID   = "FindOrganizationByID"
	OpFindOrganizationBySlug = "FindOrganizationBySlug"
	OpFindOrganizations      = "FindOrganizations"
	OpCreateOrganization     = "CreateOrganization"
	OpDeleteOrganization     = "DeleteOrganization"
	OpAddOrganizationMember  = "AddOrganizationMember"
	OpFindUserOrganizations  = "FindUserOrganizations"
)

// OrganizationService represents a service for managing organization data.
type OrganizationService interface {
	// Returns a single organization by ID.
	FindOrganizationByID(ctx context.Context, id ID) (*Organization, error)

	// Returns a single organization by its slug.
	FindOrganizationBySlug(ctx context.Context, slug string) (*Organization, error)

	// Returns the list of organizations that match filter.
	FindOrganizations(ctx context.Context, filter OrganizationFilter) ([]*Organization, error)

	// Creates a new organization and sets o.ID with the new identifier.
	CreateOrganization(ctx context.Context, o *Organization) error

	// Removes an organization by ID.
	DeleteOrganization(ctx context.Context, id ID) error

	// Records that the user is a member of the organization.
	AddOrganizationMember(ctx context.Context, orgID, userID ID) error

	// Returns the organizations the user belongs to, ordered by ascending
	// organization ID. The ordering is part of the contract: the tenancy
	// resolver derives a tenant from the first element.
	FindUserOrganizations(ctx context.Context, userID ID) ([]*Organization, error)
}

// OrganizationFilter represents a set of filters that restrict the returned results.
type OrganizationFilter struct {
	ID   *ID
	Slug *string
}
