package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Mover  = donburi.NewTag().SetName("Mover")
)

// Resolv tags for the collider broadphase
const (
	ResolvCollider = "collider"
	ResolvPlayer   = "Player"
	ResolvMover    = "Mover"
)
