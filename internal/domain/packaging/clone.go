package packaging

import "slices"

// Clone returns a copy that shares no slices with c.
func (c *Capabilities) Clone() Capabilities {
	if c == nil {
		return Capabilities{}
	}

	return Capabilities{
		General:    slices.Clone(c.General),
		Device:     slices.Clone(c.Device),
		Restricted: slices.Clone(c.Restricted),
	}
}

// Clone returns a copy that shares no slices or pointers with e.
func (e *Extensions) Clone() Extensions {
	if e == nil {
		return Extensions{}
	}

	clone := *e

	clone.FileAssociations = cloneEach(e.FileAssociations, func(a FileAssociation) FileAssociation {
		a.Extensions = slices.Clone(a.Extensions)
		return a
	})
	clone.ProtocolHandlers = slices.Clone(e.ProtocolHandlers)
	clone.ContextMenus = cloneEach(e.ContextMenus, func(m ContextMenu) ContextMenu {
		m.FileTypes = slices.Clone(m.FileTypes)
		return m
	})
	clone.BackgroundTasks = slices.Clone(e.BackgroundTasks)
	clone.ExecutionAliases = slices.Clone(e.ExecutionAliases)
	clone.AppServices = slices.Clone(e.AppServices)
	clone.AutoplayHandlers = slices.Clone(e.AutoplayHandlers)
	clone.ThumbnailHandlers = cloneEach(e.ThumbnailHandlers, func(h ThumbnailHandler) ThumbnailHandler {
		h.FileTypes = slices.Clone(h.FileTypes)
		return h
	})
	clone.PreviewHandlers = cloneEach(e.PreviewHandlers, func(h PreviewHandler) PreviewHandler {
		h.FileTypes = slices.Clone(h.FileTypes)
		return h
	})

	if enabled := e.StartupTask.Value.Enabled; enabled != nil {
		value := *enabled
		clone.StartupTask.Value.Enabled = &value
	}

	return clone
}

// Clone returns a copy of s, or nil.
func (s *Signing) Clone() *Signing {
	if s == nil {
		return nil
	}

	clone := *s

	return &clone
}

// Clone returns a copy of r, or nil.
func (r *ResourceIndex) Clone() *ResourceIndex {
	if r == nil {
		return nil
	}

	clone := *r

	return &clone
}

// cloneEach copies values element by element, keeping nil as nil.
func cloneEach[T any](values []T, clone func(T) T) []T {
	if values == nil {
		return nil
	}

	result := make([]T, len(values))
	for i, value := range values {
		result[i] = clone(value)
	}

	return result
}
