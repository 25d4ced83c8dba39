package repo

import (
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/store"
)

// Repositories manages the monitored source repositories.
type Repositories struct {
	c *core
}

// List returns all repositories in stored order, falling back to the
// default dataset when the collection is missing or corrupt.
func (r *Repositories) List() ([]model.Repository, error) {
	var repos []model.Repository
	ok, err := r.c.store.Get(store.KeyRepositories, &repos)
	if err != nil {
		return nil, err
	}
	if !ok {
		repos = model.DefaultRepositories(r.c.now())
	}
	return repos, nil
}

// Add appends a new repository. New repositories start SECURE and
// unencrypted unless the caller says otherwise.
func (r *Repositories) Add(repo model.Repository) (model.Repository, error) {
	repos, err := r.List()
	if err != nil {
		return model.Repository{}, err
	}

	now := r.c.now()
	repo.ID = nextID(repos, func(x model.Repository) int { return x.ID })
	repo.CreatedAt = now
	repo.LastAccessed = now
	repo.LastActivity = now
	if repo.SecurityStatus == "" {
		repo.SecurityStatus = model.RepoSecure
	}

	repos = append(repos, repo)
	if err := r.c.store.Set(store.KeyRepositories, repos); err != nil {
		return model.Repository{}, err
	}
	if err := r.c.mutated("repositories", "add"); err != nil {
		return model.Repository{}, err
	}
	return repo, nil
}

// Update merges the patch onto the repository with the given id.
func (r *Repositories) Update(id int, p model.RepositoryPatch) (model.Repository, error) {
	repos, err := r.List()
	if err != nil {
		return model.Repository{}, err
	}

	for i := range repos {
		if repos[i].ID != id {
			continue
		}
		if p.Name != nil {
			repos[i].Name = *p.Name
		}
		if p.Path != nil {
			repos[i].Path = *p.Path
		}
		if p.IsEncrypted != nil {
			repos[i].IsEncrypted = *p.IsEncrypted
		}
		if p.SecurityStatus != nil {
			repos[i].SecurityStatus = *p.SecurityStatus
		}
		if p.LastAccessed != nil {
			repos[i].LastAccessed = *p.LastAccessed
		}
		if p.LastActivity != nil {
			repos[i].LastActivity = *p.LastActivity
		}
		if p.User != nil {
			repos[i].User = *p.User
		}
		if err := r.c.store.Set(store.KeyRepositories, repos); err != nil {
			return model.Repository{}, err
		}
		if err := r.c.mutated("repositories", "update"); err != nil {
			return model.Repository{}, err
		}
		return repos[i], nil
	}
	return model.Repository{}, ErrNotFound
}

// Delete removes the repository with the given id. Idempotent.
func (r *Repositories) Delete(id int) error {
	repos, err := r.List()
	if err != nil {
		return err
	}

	filtered := repos[:0:0]
	for _, repo := range repos {
		if repo.ID != id {
			filtered = append(filtered, repo)
		}
	}
	if err := r.c.store.Set(store.KeyRepositories, filtered); err != nil {
		return err
	}
	return r.c.mutated("repositories", "delete")
}

// Stats returns the per-status repository breakdown.
func (r *Repositories) Stats() (model.RepositoryStats, error) {
	repos, err := r.List()
	if err != nil {
		return model.RepositoryStats{}, err
	}

	stats := model.RepositoryStats{TotalRepositories: len(repos)}
	for _, repo := range repos {
		if repo.IsEncrypted {
			stats.EncryptedRepositories++
		}
		switch repo.SecurityStatus {
		case model.RepoCompromised:
			stats.CompromisedRepositories++
		case model.RepoSecure:
			stats.SecureRepositories++
		case model.RepoWarning:
			stats.WarningRepositories++
		}
	}
	return stats, nil
}
