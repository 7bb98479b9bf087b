package joints

// Control is one user-facing slider of the posing surface.
type Control struct {
	Label  string
	Joint  ID
	MinDeg float64
	MaxDeg float64
}

// Slider range of the single-pose controls, in degrees.
const (
	ControlMinDeg = -90
	ControlMaxDeg = 90
)

// Animation track bounds, in degrees.
const (
	TrackMinDeg = -180
	TrackMaxDeg = 180
)

var coreControls = []ID{
	Global,
	3,  // spine1
	2,  // right_hip
	5,  // right_knee
	11, // right_foot
	16, // left_shoulder
	17, // right_shoulder
	18, // left_elbow
	19, // right_elbow
	6,  // spine2
}

// CoreControls returns the curated set of joint sliders, labelled by joint
// name and dominant axis.
func CoreControls() []Control {
	out := make([]Control, 0, len(coreControls))
	for _, id := range coreControls {
		s := Get(id)
		out = append(out, Control{
			Label:  s.Name + " " + s.Axis.String(),
			Joint:  id,
			MinDeg: ControlMinDeg,
			MaxDeg: ControlMaxDeg,
		})
	}
	return out
}
