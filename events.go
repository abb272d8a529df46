package globe

// EventSink is the interface for optional ECS integration. When set on a
// Globe, navigation events are forwarded to it.
type EventSink interface {
	EmitNavigation(event NavigationEvent)
}

// NavigationEventType identifies what happened to a navigation request.
type NavigationEventType uint8

const (
	NavigationStarted    NavigationEventType = iota // a tween began
	NavigationCompleted                             // a tween reached its target
	NavigationSuperseded                            // a running tween was replaced
	NavigationUnresolved                            // the location name did not resolve
)

func (t NavigationEventType) String() string {
	switch t {
	case NavigationStarted:
		return "started"
	case NavigationCompleted:
		return "completed"
	case NavigationSuperseded:
		return "superseded"
	case NavigationUnresolved:
		return "unresolved"
	}
	return "unknown"
}

// NavigationMode is the camera motion a request asked for.
type NavigationMode uint8

const (
	ModeRotate  NavigationMode = iota // linear move to the far position
	ModeZoomIn                        // ease-in move to the near position
	ModeZoomOut                       // ease-out move to the far position
)

func (m NavigationMode) String() string {
	switch m {
	case ModeRotate:
		return "rotateTo"
	case ModeZoomIn:
		return "zoomInTo"
	case ModeZoomOut:
		return "zoomOutTo"
	}
	return "unknown"
}

// NavigationEvent carries navigation data for the ECS bridge.
type NavigationEvent struct {
	Type NavigationEventType
	Mode NavigationMode
	// Location is the name as requested by the caller.
	Location string
	// Target is the camera destination. Zero for NavigationUnresolved.
	Target Vec3
}
