package repo

import (
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/store"
)

// Users manages the user collection.
type Users struct {
	c *core
}

// List returns all users in stored order, falling back to the default
// dataset when the collection is missing or corrupt.
func (r *Users) List() ([]model.User, error) {
	var users []model.User
	ok, err := r.c.store.Get(store.KeyUsers, &users)
	if err != nil {
		return nil, err
	}
	if !ok {
		users = model.DefaultUsers(r.c.now())
	}
	return users, nil
}

// Add appends a new user, assigning the next id and stamping createdAt.
func (r *Users) Add(u model.User) (model.User, error) {
	users, err := r.List()
	if err != nil {
		return model.User{}, err
	}

	u.ID = nextID(users, func(x model.User) int { return x.ID })
	u.CreatedAt = r.c.now()
	if u.Status == "" {
		u.Status = "Active"
	}

	users = append(users, u)
	if err := r.c.store.Set(store.KeyUsers, users); err != nil {
		return model.User{}, err
	}
	if err := r.c.mutated("users", "add"); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Update merges the patch onto the user with the given id.
func (r *Users) Update(id int, p model.UserPatch) (model.User, error) {
	users, err := r.List()
	if err != nil {
		return model.User{}, err
	}

	for i := range users {
		if users[i].ID != id {
			continue
		}
		if p.Name != nil {
			users[i].Name = *p.Name
		}
		if p.Email != nil {
			users[i].Email = *p.Email
		}
		if p.Role != nil {
			users[i].Role = *p.Role
		}
		if p.Status != nil {
			users[i].Status = *p.Status
		}
		if err := r.c.store.Set(store.KeyUsers, users); err != nil {
			return model.User{}, err
		}
		if err := r.c.mutated("users", "update"); err != nil {
			return model.User{}, err
		}
		return users[i], nil
	}
	return model.User{}, ErrNotFound
}

// Delete removes the user with the given id. Deleting an id that does
// not exist is a no-op.
func (r *Users) Delete(id int) error {
	users, err := r.List()
	if err != nil {
		return err
	}

	filtered := users[:0:0]
	for _, u := range users {
		if u.ID != id {
			filtered = append(filtered, u)
		}
	}
	if err := r.c.store.Set(store.KeyUsers, filtered); err != nil {
		return err
	}
	return r.c.mutated("users", "delete")
}
