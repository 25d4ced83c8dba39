package repo

import (
	"github.com/devwatch/devwatch/internal/model"
	"github.com/devwatch/devwatch/internal/store"
)

// Devices manages the device collection.
type Devices struct {
	c *core
}

// List returns all devices in stored order, falling back to the default
// dataset when the collection is missing or corrupt.
func (r *Devices) List() ([]model.Device, error) {
	var devices []model.Device
	ok, err := r.c.store.Get(store.KeyDevices, &devices)
	if err != nil {
		return nil, err
	}
	if !ok {
		devices = model.DefaultDevices(r.c.now())
	}
	return devices, nil
}

// Add appends a new device. Devices start PENDING until authorized.
func (r *Devices) Add(d model.Device) (model.Device, error) {
	devices, err := r.List()
	if err != nil {
		return model.Device{}, err
	}

	now := r.c.now()
	d.ID = nextID(devices, func(x model.Device) int { return x.ID })
	d.CreatedAt = now
	d.LastActive = now
	if d.Status == "" {
		d.Status = model.DevicePending
	}

	devices = append(devices, d)
	if err := r.c.store.Set(store.KeyDevices, devices); err != nil {
		return model.Device{}, err
	}
	if err := r.c.mutated("devices", "add"); err != nil {
		return model.Device{}, err
	}
	return d, nil
}

// Update merges the patch onto the device with the given id. Status
// transitions (PENDING -> AUTHORIZED and so on) come through here.
func (r *Devices) Update(id int, p model.DevicePatch) (model.Device, error) {
	devices, err := r.List()
	if err != nil {
		return model.Device{}, err
	}

	for i := range devices {
		if devices[i].ID != id {
			continue
		}
		if p.DeviceName != nil {
			devices[i].DeviceName = *p.DeviceName
		}
		if p.DeviceID != nil {
			devices[i].DeviceID = *p.DeviceID
		}
		if p.User != nil {
			devices[i].User = *p.User
		}
		if p.Status != nil {
			devices[i].Status = *p.Status
		}
		if p.LastActive != nil {
			devices[i].LastActive = *p.LastActive
		}
		if err := r.c.store.Set(store.KeyDevices, devices); err != nil {
			return model.Device{}, err
		}
		if err := r.c.mutated("devices", "update"); err != nil {
			return model.Device{}, err
		}
		return devices[i], nil
	}
	return model.Device{}, ErrNotFound
}

// Delete removes the device with the given id. Idempotent.
func (r *Devices) Delete(id int) error {
	devices, err := r.List()
	if err != nil {
		return err
	}

	filtered := devices[:0:0]
	for _, d := range devices {
		if d.ID != id {
			filtered = append(filtered, d)
		}
	}
	if err := r.c.store.Set(store.KeyDevices, filtered); err != nil {
		return err
	}
	return r.c.mutated("devices", "delete")
}
