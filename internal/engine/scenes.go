package engine

import (
	"fmt"

	"github.com/ayusman/mudra/internal/interact"
	"github.com/ayusman/mudra/internal/scene"
	"github.com/ayusman/mudra/internal/space"
	"github.com/ayusman/mudra/internal/swarm"
)

// SceneNames lists the scenes SwitchScene accepts.
var SceneNames = []string{"grid", "cube", "swarm"}

// NewScene builds a named scene with default configuration. particles
// overrides the swarm particle count when positive.
func NewScene(name string, particles int) (scene.Scene, error) {
	mapper := space.NewMapper(space.DefaultConfig())

	switch name {
	case "grid":
		return scene.NewGridScene(mapper, interact.DefaultConfig(), nil), nil
	case "cube":
		return scene.NewCubeScene(mapper, interact.DefaultConfig()), nil
	case "swarm":
		config := swarm.DefaultConfig()
		if particles > 0 {
			config.Count = particles
		}
		return scene.NewSwarmScene(mapper, swarm.New(config)), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}

// SwitchScene replaces the active scene by name.
func (e *Engine) SwitchScene(name string) error {
	s, err := NewScene(name, e.config.Particles)
	if err != nil {
		return err
	}
	e.SetScene(s)
	return nil
}
