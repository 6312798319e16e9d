package mock

import (
	"context"

	platform "github.com/orderly-app/orderly"
)

var _ platform.OrganizationService = &OrganizationService{}

// OrganizationService is a mock implementation of platform.OrganizationService.
type OrganizationService struct {
	FindOrganizationByIDF   func(context.Context, platform.ID) (*platform.Organization, error)
	FindOrganizationBySlugF func(context.Context, string) (*platform.Organization, error)
	FindOrganizationsF      func(context.Context, platform.OrganizationFilter) ([]*platform.Organization, error)
	CreateOrganizationF     func(context.Context, *platform.Organization) error
	DeleteOrganizationF     func(context.Context, platform.ID) error
	AddOrganizationMemberF  func(context.Context, platform.ID, platform.ID) error
	FindUserOrganizationsF  func(context.Context, platform.ID) ([]*platform.Organization, error)
}

func (s *OrganizationService) FindOrganizationByID(ctx context.Context, id platform.ID) (*platform.Organization, error) {
	return s.FindOrganizationByIDF(ctx, id)
}

func (s *OrganizationService) FindOrganizationBySlug(ctx context.Context, slug string) (*platform.Organization, error) {
	return s.FindOrganizationBySlugF(ctx, slug)
}

func (s *OrganizationService) FindOrganizations(ctx context.Context, filter platform.OrganizationFilter) ([]*platform.Organization, error) {
	return s.FindOrganizationsF(ctx, filter)
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, o *platform.Organization) error {
	return s.CreateOrganizationF(ctx, o)
}

func (s *OrganizationService) DeleteOrganization(ctx context.Context, id platform.ID) error {
	return s.DeleteOrganizationF(ctx, id)
}

func (s *OrganizationService) AddOrganizationMember(ctx context.Context, orgID, userID platform.ID) error {
	return s.AddOrganizationMemberF(ctx, orgID, userID)
}

func (s *OrganizationService) FindUserOrganizations(ctx context.Context, userID platform.ID) ([]*platform.Organization, error) {
	return s.FindUserOrganizationsF(ctx, userID)
}
