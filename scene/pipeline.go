package scene

import (
	"sort"

	"github.com/milk9111/scenegrid/collision"
	"github.com/milk9111/scenegrid/common"
)

// TestMove runs the full broad+narrow pipeline for one moving object:
// the mover's bounds swept by vel*dt select candidate bins, every
// candidate Collider in them is tested through the surface dispatch,
// and the merged contacts come back ordered by time of impact.
//
// The mover itself is skipped, as are candidates that are not
// Colliders (plain Objects occupy bins but have no collision surface).
func (c *Container) TestMove(dt float64, vel common.Vec2, mover Collider, layerMask uint32) []collision.Contact {
	if mover == nil {
		return nil
	}
	region := mover.Bounds().Sweep(vel, dt)
	surface := mover.CollisionSurface()

	var contacts []collision.Contact
	c.Query(region, layerMask, func(o Object) bool {
		if o == Object(mover) {
			return true
		}
		other, ok := o.(Collider)
		if !ok {
			return true
		}
		contacts = append(contacts, surface.TestMove(dt, vel, other.CollisionSurface())...)
		return true
	})

	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Time < contacts[j].Time
	})
	return contacts
}
