// Package globe renders an interactive 3D earth with [Ebitengine].
//
// A [Globe] owns a perspective camera, ambient and spot lights, a textured
// earth sphere, a spinning cloud shell, location markers, and a glow halo
// that is blurred and added over the scene in a post-processing pass. It
// animates the camera toward named locations with tweens (via [gween]).
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and runs the
// game loop for you:
//
//	g, err := globe.NewGlobe(globe.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	globe.Run(g, globe.RunConfig{Title: "Earth"})
//
// The globe starts spinning; call [Globe.StopAutoRotate] to hold it still.
//
// [Globe] implements [ebiten.Game], so a host game can also drive it by
// calling Update, Draw and Layout from its own methods.
//
// # Navigation
//
// Every location has a far camera position, used for rotating around the
// globe, and a near one, used for zooming in:
//
//	g.RotateTo("beijing", func() {
//		g.ZoomInTo("beijing", nil)
//	})
//
// Names are matched case-insensitively. Starting a move while another is
// running replaces it; the replaced move's callback never runs. Unknown names
// leave the camera alone and return an error wrapping [ErrUnknownLocation].
//
// # Configuration
//
// [Config] holds page size, camera, speeds, scene sizes and the location
// table. [LoadConfig] decodes YAML over [DefaultConfig]:
//
//	page_width: 1024
//	page_height: 768
//	auto_rotate: true
//	tween_duration: 1500ms
//	locations:
//	  - {name: Tokyo, lat: 35.68, lng: 139.69}
//
// # Rendering
//
// Meshes are transformed, face-culled, vertex-lit and projected on the CPU
// (via [mathgl]), then depth sorted and drawn with DrawTriangles. Textures are
// generated procedurally, so nothing is loaded from disk.
//
// Navigation events can be forwarded to an ECS through [EventSink]; see the
// [Donburi] adapter in globe/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [mathgl]: https://github.com/go-gl/mathgl
// [Donburi]: https://github.com/yohamta/donburi
package globe
