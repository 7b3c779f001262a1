// Package voice validates voice line manifests: every character pack must declare
// exactly the catalog of sound IDs the game plays, and every referenced recording must
// exist and fit the engine's path length limit.
package voice

import "sort"

// requiredSoundIDs lists every sound ID the game requests from a trooper voice pack.
var requiredSoundIDs = []string{
	"VOX_DYING",
	"VOX_GEAR_FLASH",
	"VOX_GEAR_FRAG",
	"VOX_GEAR_LAUNCHER",
	"VOX_GEAR_MOLOTOV",
	"VOX_GEAR_ROCKET",
	"VOX_GEAR_SMOKE",
	"VOX_GEAR_STINGER",
	"VOX_INJURED",
	"VOX_RELOAD",
	"VOX_RELOAD_PUMP",
	"VOX_TRPR_BOMB_DEFUSING",
	"VOX_TRPR_BOMB_LOCATED",
	"VOX_TRPR_CAN_I_SHOOT",
	"VOX_TRPR_CANT",
	"VOX_TRPR_CIV_DOWN",
	"VOX_TRPR_CLEAR",
	"VOX_TRPR_COME",
	"VOX_TRPR_DONE_HERE",
	"VOX_TRPR_EVAC",
	"VOX_TRPR_EYES_HOSTAGE",
	"VOX_TRPR_EYESONTARGET",
	"VOX_TRPR_EYESONTARGET_QUIET",
	"VOX_TRPR_FREEZE",
	"VOX_TRPR_GEAR_CHARGE_PLACE",
	"VOX_TRPR_GEAR_CHARGE_RDY",
	"VOX_TRPR_GETDOWN",
	"VOX_TRPR_GO_GO_GO",
	"VOX_TRPR_GO_LOUD",
	"VOX_TRPR_HANDCUFF",
	"VOX_TRPR_HOLDING",
	"VOX_TRPR_HOST_DOWN",
	"VOX_TRPR_HOST_SEC",
	"VOX_TRPR_HVT_RUNNING",
	"VOX_TRPR_KEEPMOVINGOFF",
	"VOX_TRPR_KEEPMOVINGON",
	"VOX_TRPR_MANDOWN",
	"VOX_TRPR_MATCHSPEEDON",
	"VOX_TRPR_MOVING",
	"VOX_TRPR_NOTANGOS",
	"VOX_TRPR_ONTARGET",
	"VOX_TRPR_ON_ALPHA",
	"VOX_TRPR_ON_BRAVO",
	"VOX_TRPR_ON_CHARLIE",
	"VOX_TRPR_ON_DELTA",
	"VOX_TRPR_ORDERS",
	"VOX_TRPR_PASS_ALPHA",
	"VOX_TRPR_PASS_BRAVO",
	"VOX_TRPR_PASS_CHARLIE",
	"VOX_TRPR_PASS_DELTA",
	"VOX_TRPR_PINNED_DOWN",
	"VOX_TRPR_PUMPUP",
	"VOX_TRPR_ROGER",
	"VOX_TRPR_SILENTOFF",
	"VOX_TRPR_SILENTON",
	"VOX_TRPR_SUSP_SEC",
	"VOX_TRPR_TANGODOWN",
	"VOX_TRPR_TANGOS",
	"VOX_TRPR_TARGET_SEC",
	"VOX_TRPR_TIME_TO_GO",
	"VOX_TRPR_VIP_DEAD",
	"VOX_TRPR_WAIT",
	"VOX_WARN_GRENADE",
	"VOX_WARN_RPG",
}

// Catalog is a set of required sound IDs.
type Catalog map[string]struct{}

// NewCatalog builds a catalog from ids.
func NewCatalog(ids ...string) Catalog {
	c := make(Catalog, len(ids))
	for _, id := range ids {
		c[id] = struct{}{}
	}
	return c
}

// DefaultCatalog returns the catalog the game requires of every voice pack.
func DefaultCatalog() Catalog {
	return NewCatalog(requiredSoundIDs...)
}

// RequiredSoundIDs returns the default catalog sorted.
func RequiredSoundIDs() []string {
	return DefaultCatalog().IDs()
}

// Has reports whether id is in the catalog.
func (c Catalog) Has(id string) bool {
	_, ok := c[id]
	return ok
}

// Len returns the number of IDs in the catalog.
func (c Catalog) Len() int {
	return len(c)
}

// IDs returns the catalog's IDs sorted.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
