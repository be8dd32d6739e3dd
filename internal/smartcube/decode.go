package smartcube

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/gocube3d"
)

// RotationEvent is one face turn reported by the cube.
type RotationEvent struct {
	FaceCode          byte
	CenterOrientation byte
	Clockwise         bool
	Color             gocube3d.FaceColor
}

// Color index used by the cube firmware.
var colorIndex = [...]gocube3d.FaceColor{
	gocube3d.Blue,
	gocube3d.Green,
	gocube3d.White,
	gocube3d.Yellow,
	gocube3d.Red,
	gocube3d.Orange,
}

// DecodeRotation decodes [face_dir][center_orientation] byte pairs.
// Even face codes are clockwise, odd codes counter-clockwise.
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	events := make([]RotationEvent, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorIndex) {
			return nil, fmt.Errorf("unknown color index %d from face code 0x%02X", idx, code)
		}
		events = append(events, RotationEvent{
			FaceCode:          code,
			CenterOrientation: payload[i+1],
			Clockwise:         code%2 == 0,
			Color:             colorIndex[idx],
		})
	}
	return events, nil
}

// Move names the turn on cube in notation. The face is wherever the center
// of the event's color currently sits, so slice turns made in the game do
// not break the mirror.
func (e RotationEvent) Move(cube *gocube3d.Cube) (gocube3d.Move, bool) {
	face, ok := cube.FaceOf(e.Color)
	if !ok {
		return gocube3d.Move{}, false
	}
	turn := gocube3d.CW
	if !e.Clockwise {
		turn = gocube3d.CCW
	}
	return gocube3d.Move{Face: face, Turn: turn}, true
}

// DecodeBattery returns the battery level in percent.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("battery payload too short")
	}
	return int(payload[0]), nil
}

// OrientationEvent is the cube's reported attitude.
type OrientationEvent struct {
	Rotation mgl64.Quat
	Up       gocube3d.Face // face pointing up
	Front    gocube3d.Face // face pointing at the solver
}

// DecodeOrientation decodes the ASCII "x#y#z#w" payload. The cube sends raw
// integers, so the quaternion is normalized.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid orientation component %d: %w", i, err)
		}
		v[i] = f
	}

	q := mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}
	if q.Len() == 0 {
		return nil, fmt.Errorf("orientation quaternion is zero")
	}
	q = q.Normalize()

	return &OrientationEvent{
		Rotation: q,
		Up:       nearestFace(q.Rotate(mgl64.Vec3{0, 1, 0})),
		Front:    nearestFace(q.Rotate(mgl64.Vec3{0, 0, 1})),
	}, nil
}

func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

func nearestFace(v mgl64.Vec3) gocube3d.Face {
	ax, ay, az := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())
	switch {
	case ay >= ax && ay >= az:
		if v.Y() > 0 {
			return gocube3d.FaceU
		}
		return gocube3d.FaceD
	case az >= ax:
		if v.Z() > 0 {
			return gocube3d.FaceF
		}
		return gocube3d.FaceB
	case v.X() > 0:
		return gocube3d.FaceR
	default:
		return gocube3d.FaceL
	}
}
