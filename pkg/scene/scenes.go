package scene

import (
	"fmt"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListScenes returns the built-in scenes
func ListScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "cornell",
			Name:        "Cornell Box",
			Description: "Cornell box with a metal and a glass sphere",
		},
		{
			ID:          "spheres",
			Name:        "Material Spheres",
			Description: "Row of spheres covering every material model",
		},
	}
}

// NewSceneByID builds a built-in scene by its identifier
func NewSceneByID(id string) (*Scene, error) {
	switch id {
	case "cornell":
		return NewCornellScene(), nil
	case "spheres":
		return NewSpheresScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(sceneIDs(), ", "))
	}
}

func sceneIDs() []string {
	infos := ListScenes()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
