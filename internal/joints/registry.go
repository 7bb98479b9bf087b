package joints

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a body joint by its SMPL-X ordinal. Global is the root
// orientation pseudo-joint.
type ID int

// Global denotes the root/global-orientation pseudo-joint (pose slots 0–2).
const Global ID = -1

// GlobalName is the registry name of the Global pseudo-joint.
const GlobalName = "global"

// Axis is the dominant rotation axis of a joint.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Spec is one immutable registry entry.
type Spec struct {
	Name string
	ID   ID
	Axis Axis
}

// table is ordered by ID, global first.
// Convention: hips/knees/ankles/feet rotate about Z, spine/neck/head about Y,
// collars/shoulders/elbows/wrists about X, global about Y (yaw only).
var table = []Spec{
	{GlobalName, Global, AxisY},
	{"pelvis", 0, AxisX},
	{"left_hip", 1, AxisZ},
	{"right_hip", 2, AxisZ},
	{"spine1", 3, AxisY},
	{"left_knee", 4, AxisZ},
	{"right_knee", 5, AxisZ},
	{"spine2", 6, AxisY},
	{"left_ankle", 7, AxisZ},
	{"right_ankle", 8, AxisZ},
	{"spine3", 9, AxisY},
	{"left_foot", 10, AxisZ},
	{"right_foot", 11, AxisZ},
	{"neck", 12, AxisY},
	{"left_collar", 13, AxisX},
	{"right_collar", 14, AxisX},
	{"head", 15, AxisY},
	{"left_shoulder", 16, AxisX},
	{"right_shoulder", 17, AxisX},
	{"left_elbow", 18, AxisX},
	{"right_elbow", 19, AxisX},
	{"left_wrist", 20, AxisX},
	{"right_wrist", 21, AxisX},
}

// NumBody is the number of numbered body joints (pelvis..right_wrist).
const NumBody = 22

var (
	byID   = make(map[ID]Spec, len(table))
	byName = make(map[string]Spec, len(table))
)

func init() {
	for _, s := range table {
		byID[s.ID] = s
		byName[s.Name] = s
	}
}

// AxisFor returns the dominant axis of id. Joints absent from the table are
// treated as upper-limb-like and rotate about X.
func AxisFor(id ID) Axis {
	if s, ok := byID[id]; ok {
		return s.Axis
	}
	return AxisX
}

// OffsetFor returns the first pose-vector slot owned by id:
// 3 + 3*id for numbered joints, 0 for Global.
func OffsetFor(id ID) int {
	if id == Global {
		return 0
	}
	return 3 + int(id)*3
}

// Slot returns the absolute pose-vector slot that receives id's angle.
// Global always targets slot 1 (yaw).
func Slot(id ID) int {
	if id == Global {
		return 1
	}
	return OffsetFor(id) + int(AxisFor(id))
}

// Lookup returns the entry registered under name.
func Lookup(name string) (Spec, bool) {
	s, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Get returns the entry for id. Unlisted ids get a synthesized entry
// with the default axis.
func Get(id ID) Spec {
	if s, ok := byID[id]; ok {
		return s
	}
	return Spec{Name: fmt.Sprintf("joint_%d", int(id)), ID: id, Axis: AxisX}
}

// Parse resolves a joint name, "global", a decimal id or the "joint_N" form
// that Get synthesizes.
func Parse(s string) (ID, error) {
	if spec, ok := Lookup(s); ok {
		return spec.ID, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "joint_"))
	if err != nil {
		return 0, fmt.Errorf("joints: unknown joint %q", s)
	}
	return ID(n), nil
}

// All returns every registry entry in ID order, global first.
func All() []Spec {
	out := make([]Spec, len(table))
	copy(out, table)
	return out
}

func (id ID) String() string {
	return Get(id).Name
}
