package interact

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// PalmAngle returns the orientation of the wrist-to-middle-MCP vector in
// the image plane. Used as the flip heuristic when world landmarks are
// unavailable.
func PalmAngle(lm [detector.NumLandmarks]detector.Point3D) float64 {
	wrist := lm[detector.Wrist]
	mid := lm[detector.MiddleMCP]
	return math.Atan2(mid.Y-wrist.Y, mid.X-wrist.X)
}

// PalmNormalZ returns the z component of the palm normal, computed as the
// cross product of (indexMCP - wrist) and (pinkyMCP - wrist) in world
// coordinates. Its sign distinguishes palm-toward-camera from
// back-of-hand-toward-camera; the magnitude is not meaningful.
func PalmNormalZ(world [detector.NumLandmarks]detector.Point3D) float64 {
	wrist := world[detector.Wrist]
	ax := world[detector.IndexMCP].X - wrist.X
	ay := world[detector.IndexMCP].Y - wrist.Y
	bx := world[detector.PinkyMCP].X - wrist.X
	by := world[detector.PinkyMCP].Y - wrist.Y
	return ax*by - ay*bx
}

// wrapAngle wraps an angle difference into [-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
