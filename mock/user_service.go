package mock

import (
	"context"

	platform "github.com/orderly-app/orderly"
)

var _ platform.UserService = &UserService{}

// UserService is a mock implementation of platform.UserService.
type UserService struct {
	FindUserByIDF    func(context.Context, platform.ID) (*platform.User, error)
	FindUserByEmailF func(context.Context, string) (*platform.User, error)
	FindUsersF       func(context.Context) ([]*platform.User, error)
	CreateUserF      func(context.Context, *platform.User) error
	DeleteUserF      func(context.Context, platform.ID) error
}

func (s *UserService) FindUserByID(ctx context.Context, id platform.ID) (*platform.User, error) {
	return s.FindUserByIDF(ctx, id)
}

func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*platform.User, error) {
	return s.FindUserByEmailF(ctx, email)
}

func (s *UserService) FindUsers(ctx context.Context) ([]*platform.User, error) {
	return s.FindUsersF(ctx)
}

func (s *UserService) CreateUser(ctx context.Context, u *platform.User) error {
	return s.CreateUserF(ctx, u)
}

func (s *UserService) DeleteUser(ctx context.Context, id platform.ID) error {
	return s.DeleteUserF(ctx, id)
}
