package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/akmonengine/scenerig"
	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/camera"
	"github.com/akmonengine/scenerig/config"
	"github.com/akmonengine/scenerig/input"
	"github.com/akmonengine/scenerig/marker"
	"github.com/akmonengine/scenerig/shaper"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	edgeColor   = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	markerColor = color.RGBA{R: 0xff, G: 0xc0, B: 0x30, A: 0xff}
	background  = color.RGBA{R: 0x20, G: 0x22, B: 0x28, A: 0xff}
)

// box edges over the corner order of actor.AABB.Corners
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

var gizmoColors = map[marker.TargetAxis]color.Color{
	marker.TargetRight:   color.RGBA{R: 0xff, A: 0xff},
	marker.TargetUp:      color.RGBA{G: 0xff, A: 0xff},
	marker.TargetForward: color.RGBA{B: 0xff, A: 0xff},
}

var digitKeys = [10]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

type viewer struct {
	scene   *scenerig.Scene
	rig     *camera.Rig
	markers *marker.Placement
	shapes  *shaper.Scaler

	model   *actor.Node
	reload  chan config.File
	// last applied file
	current config.File

	width, height    int
	cursorX, cursorY int
	// the first tick has no previous cursor position
	polled   bool
	touchIDs []ebiten.TouchID
}

// setupScene builds a cube and two cylinders under a model node, with the camera rig nodes
func setupScene() (*scenerig.Scene, *actor.Node, *actor.Node, []*actor.Node) {
	scene := scenerig.NewScene()

	model := actor.NewNode("Model")
	cube := actor.NewPrimitive("Cube", actor.NewCube())
	cube.SetParent(model, false)

	var cylinders []*actor.Node
	for i, x := range []float64{-2, 2} {
		cylinder := actor.NewPrimitive(fmt.Sprintf("Cylinder_%d", i+1), actor.NewCylinder())
		cylinder.Local.Position = mgl64.Vec3{x, 0, 0}
		cylinder.SetParent(model, false)
		cylinders = append(cylinders, cylinder)
	}

	scene.Add(model)

	return scene, model, cube, cylinders
}

func newViewer(file config.File, width, height int) (*viewer, error) {
	scene, model, cube, cylinders := setupScene()

	v := &viewer{
		scene:   scene,
		model:   model,
		reload:  make(chan config.File, 1),
		current: file.Clone(),
		width:   width,
		height:  height,
	}

	pivot := actor.NewNode("Pivot")
	cam := actor.NewNode("Camera")
	cam.Local.Position = mgl64.Vec3{0, 2, -10}
	scene.Add(pivot)
	scene.Add(cam)

	rig, err := v.newRig(file.Camera, cam, pivot)
	if err != nil {
		return nil, err
	}
	v.rig = rig

	v.shapes = shaper.New(cube, cylinders...)
	file.Shapes.Apply(v.shapes)

	base := marker.DefaultConfig()
	base.FollowTarget = model
	cfg := file.Markers.Apply(base, v.find)
	// markers parented to the world root are not under any scene node
	v.markers = marker.New(model, cfg, marker.WithFactory(func(name string) *actor.Node {
		node := marker.DefaultFactory(name)
		scene.Add(node)
		return node
	}))

	for _, b := range []any{v.shapes, v.markers, v.rig} {
		if err = scene.AddBehaviour(b); err != nil {
			return nil, err
		}
	}

	scene.Events.Subscribe(scenerig.ON_ACTIVATE, func(event scenerig.Event) {
		slog.Debug("node shown", "name", event.(scenerig.ActivateEvent).Node.Name)
	})
	scene.Events.Subscribe(scenerig.ON_DEACTIVATE, func(event scenerig.Event) {
		slog.Debug("node hidden", "name", event.(scenerig.DeactivateEvent).Node.Name)
	})

	return v, nil
}

func (v *viewer) newRig(c config.Camera, cam, pivot *actor.Node) (*camera.Rig, error) {
	opts := append(c.Options(), camera.WithTarget(v.model), camera.WithLogger(slog.Default()))

	rig, err := camera.New(cam, pivot, c.Lens(float64(v.width), float64(v.height)), opts...)
	if err != nil {
		return nil, fmt.Errorf("camera rig: %w", err)
	}

	return rig, nil
}

func (v *viewer) find(name string) *actor.Node {
	for _, node := range v.scene.Nodes() {
		if node.Name == name {
			return node
		}
	}

	return nil
}

// apply swaps in a reloaded file, the rig is rebuilt on the same nodes.
// On failure the previous file stays in effect.
func (v *viewer) apply(file config.File) {
	rig, err := v.newRig(file.Camera, v.rig.Camera(), v.rig.Pivot())
	if err != nil {
		slog.Error("reload: "+err.Error(), "kept", v.current.Camera.Preset)
		return
	}
	v.scene.RemoveBehaviour(v.rig)
	v.rig = rig
	if err = v.scene.AddBehaviour(rig); err != nil {
		slog.Error("reload: " + err.Error())
	}

	file.Shapes.Apply(v.shapes)
	v.markers.SetConfig(file.Markers.Apply(v.markers.Config(), v.find))
	v.markers.ResetVisibility()
	v.current = file.Clone()

	slog.Info("configuration reloaded")
}

// poll converts the ebiten input of this tick, flipping Y so that up is positive
func (v *viewer) poll() input.State {
	var in input.State

	x, y := ebiten.CursorPosition()
	if !v.polled {
		v.cursorX, v.cursorY, v.polled = x, y, true
	}
	in.PointerDelta = mgl64.Vec2{float64(x - v.cursorX), float64(v.cursorY - y)}
	v.cursorX, v.cursorY = x, y

	in.Buttons[input.MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.Buttons[input.MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.Buttons[input.MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	_, in.Scroll = ebiten.Wheel()

	justPressed := inpututil.AppendJustPressedTouchIDs(nil)
	v.touchIDs = ebiten.AppendTouchIDs(v.touchIDs[:0])
	for _, id := range v.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)

		touch := input.Touch{
			ID:       int(id),
			Position: mgl64.Vec2{float64(tx), float64(v.height - ty)},
			Delta:    mgl64.Vec2{float64(tx - px), float64(py - ty)},
			Phase:    input.TouchStationary,
		}
		switch {
		case slices.Contains(justPressed, id):
			touch.Phase = input.TouchBegan
			touch.Delta = mgl64.Vec2{}
		case tx != px || ty != py:
			touch.Phase = input.TouchMoved
		}
		in.Touches = append(in.Touches, touch)
	}

	for d, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			in.JustPressed = append(in.JustPressed, input.DigitKey(d))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		in.JustPressed = append(in.JustPressed, input.KeyF)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		in.JustPressed = append(in.JustPressed, input.KeyR)
	}

	return in
}

func (v *viewer) Update() error {
	select {
	case file := <-v.reload:
		v.apply(file)
	default:
	}

	in := v.poll()
	if in.KeyPressed(input.KeyR) {
		v.rig.Reset()
	}
	v.scene.Frame(1/float64(ebiten.TPS()), in)

	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, node := range v.scene.Nodes() {
		if node.Shape == nil || !node.ActiveInHierarchy() {
			continue
		}
		v.drawNode(screen, node)
	}
	for _, line := range v.markers.Gizmos() {
		v.drawLine(screen, line.From, line.To, gizmoColors[line.Axis])
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"yaw %.1f pitch %.1f distance %.2f\nLMB orbit, RMB pan, wheel zoom, F frame, R reset\n1-6 toggle cut planes, 0 hide all",
		v.rig.Yaw(), v.rig.Pitch(), v.rig.DesiredDistance()))
}

func (v *viewer) drawNode(screen *ebiten.Image, node *actor.Node) {
	m := node.WorldMatrix()

	if quad, ok := node.Shape.(*actor.Quad); ok {
		vertices := quad.Vertices()
		for i := range vertices {
			a := mgl64.TransformCoordinate(vertices[i], m)
			b := mgl64.TransformCoordinate(vertices[(i+1)%len(vertices)], m)
			v.drawLine(screen, a, b, markerColor)
		}
		return
	}

	corners := node.Shape.LocalBounds().Corners()
	for _, edge := range boxEdges {
		a := mgl64.TransformCoordinate(corners[edge[0]], m)
		b := mgl64.TransformCoordinate(corners[edge[1]], m)
		v.drawLine(screen, a, b, edgeColor)
	}
}

// drawLine draws a world space segment, skipped when an end is behind the camera
func (v *viewer) drawLine(screen *ebiten.Image, a, b mgl64.Vec3, clr color.Color) {
	pa, okA := v.rig.WorldToScreen(a)
	pb, okB := v.rig.WorldToScreen(b)
	if !okA || !okB {
		return
	}

	vector.StrokeLine(screen, float32(pa.X()), float32(pa.Y()), float32(pb.X()), float32(pb.Y()), 1, clr, true)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	v.rig.SetViewport(float64(outsideWidth), float64(outsideHeight))

	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "YAML settings file, reloaded on change")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	file := config.Default()
	if *configPath != "" {
		var err error
		if file, err = config.Load(*configPath); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}

	v, err := newViewer(file, *width, *height)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	if *configPath != "" {
		err = config.Watch(ctx, *configPath, func(f config.File, err error) {
			if err != nil {
				slog.Warn("reload skipped: " + err.Error())
				return
			}
			// keep only the latest file
			select {
			case <-v.reload:
			default:
			}
			v.reload <- f
		})
		if err != nil {
			slog.Warn(err.Error())
		}
	}

	ebiten.SetWindowTitle("scenerig viewer")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err = ebiten.RunGame(v); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
