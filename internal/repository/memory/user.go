package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
)

func (r *implRepository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	for _, u := range r.users {
		if user.Email != "" && strings.EqualFold(u.Email, user.Email) {
			return model.User{}, repository.ErrDuplicate
		}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *implRepository) GetUser(ctx context.Context, id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *implRepository) FindUser(ctx context.Context, sel model.UserSelector) (model.User, error) {
	if sel.ID != "" {
		return r.GetUser(ctx, sel.ID)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		switch {
		case sel.Email != "" && strings.EqualFold(u.Email, sel.Email):
			return u, nil
		case sel.Email == "" && sel.TokenID != "" && u.TokenID == sel.TokenID:
			return u, nil
		case sel.Email == "" && sel.TokenID == "" && sel.ExternalUserID != "" && u.ExternalUserID == sel.ExternalUserID:
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}
