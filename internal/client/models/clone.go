package models

import "slices"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a copy that shares no memory with p.
func (p Property) Clone() Property {
	p.Nickname = clonePtr(p.Nickname)
	p.Address2 = clonePtr(p.Address2)
	p.AcquiredDate = clonePtr(p.AcquiredDate)
	p.IsActive = clonePtr(p.IsActive)
	p.Notes = clonePtr(p.Notes)
	p.CreatedAt = clonePtr(p.CreatedAt)
	p.UpdatedAt = clonePtr(p.UpdatedAt)
	return p
}

func (c Category) Clone() Category {
	c.IsDefault = clonePtr(c.IsDefault)
	c.CreatedAt = clonePtr(c.CreatedAt)
	c.UpdatedAt = clonePtr(c.UpdatedAt)
	return c
}

func (e Entry) Clone() Entry {
	e.Notes = clonePtr(e.Notes)
	e.Images = slices.Clone(e.Images)
	e.StartTime = clonePtr(e.StartTime)
	e.EndTime = clonePtr(e.EndTime)
	e.CategoryID = clonePtr(e.CategoryID)
	e.CreatedAt = clonePtr(e.CreatedAt)
	e.UpdatedAt = clonePtr(e.UpdatedAt)
	return e
}
