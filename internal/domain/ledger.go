package domain

// ApplyDelta moves a module's completed count by delta, clamped into
// [0, TotalItems]. It is a no-op for a zero delta or an unknown module.
// Every progress change goes through here.
func (s *AppState) ApplyDelta(resourceID, moduleID string, delta int) {
	if delta == 0 {
		return
	}
	_, mod := s.FindModule(resourceID, moduleID)
	if mod == nil {
		return
	}
	mod.CompletedItems += delta
	mod.clamp()
}
