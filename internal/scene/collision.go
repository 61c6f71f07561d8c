package scene

import "slices"

// DetectCollisions tests every eligible pair of live entities and notifies
// the participants. It never removes anything itself; callbacks may, and an
// entity that left the scene is skipped for the rest of the pass.
//
// Splat pairs exclude ammo and notify both sides. Splat-model pairs exclude
// ammo and missiles and notify only the model.
func (s *Scene) DetectCollisions() {
	splats := slices.Clone(s.splats)
	models := slices.Clone(s.models)

	for i, a := range splats {
		if a.Category() == CategoryAmmo {
			continue
		}
		for _, b := range splats[i+1:] {
			if b.Category() == CategoryAmmo {
				continue
			}
			if !s.live(a) {
				break
			}
			if !s.live(b) {
				continue
			}
			if a.BoundingBox().Overlaps(b.BoundingBox()) {
				a.hit(b)
				b.hit(a)
			}
		}
	}

	for _, sp := range splats {
		if sp.Category() == CategoryAmmo || sp.Category() == CategoryMissile {
			continue
		}
		for _, m := range models {
			if !s.live(sp) {
				break
			}
			if !s.live(m) {
				continue
			}
			if sp.BoundingBox().Overlaps(m.BoundingBox()) {
				m.hit(sp)
			}
		}
	}
}
