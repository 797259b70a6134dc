// Package space projects normalized, mirrored landmark coordinates into
// the spaces consumed by the scenes: 3x3 grid cell indices and 3D world
// positions.
package space

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// GridSize is the edge length of the cell grid.
const GridSize = 3

// NoCell is returned when a coordinate maps to no valid grid cell.
const NoCell = -1

// Config holds the mapping parameters.
type Config struct {
	// VideoAspect and ViewAspect describe the camera feed and the viewport
	// it is composited into. When they differ, the feed is center-cropped
	// (letterboxed) and world mapping compensates for the crop.
	VideoAspect float64
	ViewAspect  float64

	// World extents: normalized [0,1] coordinates span
	// [-WorldWidth/2, WorldWidth/2] horizontally and the equivalent
	// vertically. Depth scales the detector's relative z.
	WorldWidth  float64
	WorldHeight float64
	WorldDepth  float64
}

// DefaultConfig returns mapping defaults for a 4:3 camera in a 16:9 view.
func DefaultConfig() Config {
	return Config{
		VideoAspect: 4.0 / 3.0,
		ViewAspect:  16.0 / 9.0,
		WorldWidth:  4.0,
		WorldHeight: 3.0,
		WorldDepth:  2.0,
	}
}

// Mapper converts normalized palm coordinates to grid cells and world
// positions. The camera feed is mirrored, so x is flipped before use.
type Mapper struct {
	config Config
}

// NewMapper creates a Mapper with the given configuration.
func NewMapper(config Config) *Mapper {
	return &Mapper{config: config}
}

// Cell buckets a normalized coordinate into a row-major 3x3 grid index,
// mirroring x first. Coordinates outside [0,1) on either axis (after the
// mirror) return NoCell.
func (m *Mapper) Cell(x, y float64) int {
	flippedX := 1 - x
	if flippedX < 0 || flippedX >= 1 || y < 0 || y >= 1 {
		return NoCell
	}

	col := int(math.Floor(flippedX * GridSize))
	row := int(math.Floor(y * GridSize))
	return row*GridSize + col
}

// World maps a normalized coordinate into scene space: x mirrored and
// centered, y inverted (screen y grows downward, world y grows upward),
// and the horizontal axis corrected for the letterbox crop when the video
// and view aspect ratios differ.
func (m *Mapper) World(x, y, z float64) r3.Vec {
	u := 1 - x
	v := y

	// Compensate for a center crop: only a fraction of the wider axis of
	// the feed is visible in the viewport.
	if m.config.VideoAspect > 0 && m.config.ViewAspect > 0 && m.config.VideoAspect != m.config.ViewAspect {
		if m.config.VideoAspect > m.config.ViewAspect {
			visible := m.config.ViewAspect / m.config.VideoAspect
			u = (u - (1-visible)/2) / visible
		} else {
			visible := m.config.VideoAspect / m.config.ViewAspect
			v = (v - (1-visible)/2) / visible
		}
	}

	return r3.Vec{
		X: (u - 0.5) * m.config.WorldWidth,
		Y: (0.5 - v) * m.config.WorldHeight,
		Z: z * m.config.WorldDepth,
	}
}
