package collision

import (
	"sort"

	"github.com/milk9111/scenegrid/common"
)

// Contact describes one collision found by a swept test. Contacts are
// transient: produced by a query, consumed by the caller's integrator,
// never persisted.
type Contact struct {
	// Mover and Target are the owner tags of the two surfaces, with
	// Mover always the side that was swept.
	Mover  any
	Target any

	// Normal is the unit contact normal pointing from the target
	// toward the mover (against the mover's motion).
	Normal common.Vec2

	// Time is the time-of-impact fraction of the tested dt, in [0,1].
	Time float64

	// Penetration is nonzero only for pairs already overlapping at the
	// start of the step (Time == 0): the minimum translation distance
	// along Normal that separates them.
	Penetration float64
}

// swap flips a contact's point of view after a mover/target role swap.
func (c Contact) swap() Contact {
	c.Mover, c.Target = c.Target, c.Mover
	c.Normal = c.Normal.Neg()
	return c
}

func sortContacts(contacts []Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Time < contacts[j].Time
	})
}
