package components

import (
	"github.com/automoto/platcore/collision"
	"github.com/automoto/platcore/kinematics"
	"github.com/yohamta/donburi"
)

var Transform = donburi.NewComponentType[collision.Transform]()

var Collider = donburi.NewComponentType[collision.Collider]()

var KinematicsBody = donburi.NewComponentType[kinematics.Body]()
