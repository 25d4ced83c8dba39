package repo

import (
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/store"
)

// Activities manages the activity collection. The collection is kept
// most-recent-first: new activities are prepended, which is what makes
// the dashboard's recent-activity slice work without sorting.
type Activities struct {
	c *core
}

// List returns all activities, newest first, falling back to the
// default dataset when the collection is missing or corrupt.
func (r *Activities) List() ([]model.Activity, error) {
	var activities []model.Activity
	ok, err := r.c.store.Get(store.KeyActivities, &activities)
	if err != nil {
		return nil, err
	}
	if !ok {
		activities = model.DefaultActivities(r.c.now())
	}
	return activities, nil
}

// Add prepends a new activity, assigning the next id and stamping the
// timestamp.
func (r *Activities) Add(a model.Activity) (model.Activity, error) {
	activities, err := r.List()
	if err != nil {
		return model.Activity{}, err
	}

	a.ID = nextID(activities, func(x model.Activity) int { return x.ID })
	a.Timestamp = r.c.now()

	activities = append([]model.Activity{a}, activities...)
	if err := r.c.store.Set(store.KeyActivities, activities); err != nil {
		return model.Activity{}, err
	}
	if err := r.c.mutated("activities", "add"); err != nil {
		return model.Activity{}, err
	}
	return a, nil
}

// Update merges the patch onto the activity with the given id.
func (r *Activities) Update(id int, p model.ActivityPatch) (model.Activity, error) {
	activities, err := r.List()
	if err != nil {
		return model.Activity{}, err
	}

	for i := range activities {
		if activities[i].ID != id {
			continue
		}
		if p.ActivityType != nil {
			activities[i].ActivityType = *p.ActivityType
		}
		if p.User != nil {
			activities[i].User = *p.User
		}
		if p.Device != nil {
			activities[i].Device = *p.Device
		}
		if p.Repository != nil {
			activities[i].Repository = *p.Repository
		}
		if p.IsSuspicious != nil {
			activities[i].IsSuspicious = *p.IsSuspicious
		}
		if p.Metadata != nil {
			activities[i].Metadata = *p.Metadata
		}
		if err := r.c.store.Set(store.KeyActivities, activities); err != nil {
			return model.Activity{}, err
		}
		if err := r.c.mutated("activities", "update"); err != nil {
			return model.Activity{}, err
		}
		return activities[i], nil
	}
	return model.Activity{}, ErrNotFound
}

// Delete removes the activity with the given id. Idempotent.
func (r *Activities) Delete(id int) error {
	activities, err := r.List()
	if err != nil {
		return err
	}

	filtered := activities[:0:0]
	for _, a := range activities {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	if err := r.c.store.Set(store.KeyActivities, filtered); err != nil {
		return err
	}
	return r.c.mutated("activities", "delete")
}
