package globe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a navigation script.
type scriptStep struct {
	Action   string  `yaml:"action"`
	Location string  `yaml:"location,omitempty"`
	Label    string  `yaml:"label,omitempty"`
	X        float64 `yaml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty"`
	Z        float64 `yaml:"z,omitempty"`
	FromX    float64 `yaml:"fromX,omitempty"`
	FromY    float64 `yaml:"fromY,omitempty"`
	ToX      float64 `yaml:"toX,omitempty"`
	ToY      float64 `yaml:"toY,omitempty"`
	Frames   int     `yaml:"frames,omitempty"`
}

// scriptFile is the top-level structure of a navigation script.
type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"rotateTo":        true,
	"zoomInTo":        true,
	"zoomOutTo":       true,
	"setCamera":       true,
	"startAutoRotate": true,
	"stopAutoRotate":  true,
	"waitTween":       true,
	"wait":            true,
	"drag":            true,
	"screenshot":      true,
}

// Script sequences navigation calls, synthetic drags and screenshots across
// frames for demos and automated visual checks. Attach to a Globe with
// SetScript.
//
// Scripts are YAML or JSON:
//
//	{"steps": [
//	  {"action": "rotateTo", "location": "beijing"},
//	  {"action": "waitTween"},
//	  {"action": "zoomInTo", "location": "beijing"},
//	  {"action": "waitTween"},
//	  {"action": "screenshot", "label": "beijing-near"}
//	]}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	// Errors collects navigation failures, such as unknown locations.
	Errors []error
}

// LoadScript parses a navigation script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// LoadScriptFile reads and parses a navigation script file.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return LoadScript(data)
}

// SetScript attaches a script. Its step method runs at the start of every
// Update, before animation.
func (g *Globe) SetScript(s *Script) {
	g.script = s
}

// Done reports whether every step has been executed.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one frame.
func (s *Script) step(g *Globe) {
	if s.done {
		return
	}
	// Wait for pending drags to drain before advancing.
	if g.orbit.PendingInjected() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	switch st.Action {
	case "waitTween":
		// Hold the cursor until the camera arrives.
		if g.Tweening() {
			return
		}
	case "rotateTo":
		s.record(g.RotateTo(st.Location, nil))
	case "zoomInTo":
		s.record(g.ZoomInTo(st.Location, nil))
	case "zoomOutTo":
		s.record(g.ZoomOutTo(st.Location, nil))
	case "setCamera":
		g.SetCameraXYZ(st.X, st.Y, st.Z)
	case "startAutoRotate":
		g.StartAutoRotate()
	case "stopAutoRotate":
		g.StopAutoRotate()
	case "screenshot":
		g.Screenshot(st.Label)
	case "drag":
		g.orbit.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 3))
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	s.cursor++

	if s.cursor >= len(s.steps) && s.waitCount == 0 && g.orbit.PendingInjected() == 0 {
		s.done = true
	}
}

func (s *Script) record(err error) {
	if err != nil {
		s.Errors = append(s.Errors, err)
	}
}
