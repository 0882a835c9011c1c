// FILE: lixenwraith/confinit/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/confinit"
)

const configText = `
[box]
x = 3
y = 4

[conveyor]
speed = 1.5
segments = [10, 20, 5]
idle_timeout = "30s"
`

// BoxArgs is the raw shape of the [box] section
type BoxArgs struct {
	X uint32 `toml:"x"`
	Y uint32 `toml:"y"`
}

// Box is built from BoxArgs; its area is derived, never configured
type Box struct {
	x, y uint32
	area uint32
}

func (b *Box) DeriveFrom(a *BoxArgs) error {
	if a.X == 0 || a.Y == 0 {
		return confinit.Invalid("box sides must be positive, got %dx%d", a.X, a.Y)
	}
	b.x, b.y = a.X, a.Y
	b.area = a.X * a.Y
	return nil
}

func (b *Box) Summary() confinit.Summary {
	return confinit.Entry(
		confinit.Some(fmt.Sprintf("x=%d,y=%d", b.x, b.y)),
		confinit.Some(fmt.Sprintf("area=%d", b.area)),
	)
}

// ConveyorArgs is the raw shape of the [conveyor] section
type ConveyorArgs struct {
	Speed       float64       `toml:"speed"`
	Segments    []uint32      `toml:"segments"`
	IdleTimeout time.Duration `toml:"idle_timeout"`
}

// Conveyor is built with a plain function instead of DeriveFrom
type Conveyor struct {
	speed  float64
	length uint32
	idle   time.Duration
	moving bool
}

func NewConveyor(a *ConveyorArgs) (*Conveyor, error) {
	if a.Speed <= 0 {
		return nil, confinit.Invalid("speed must be positive, got %v", a.Speed)
	}
	c := &Conveyor{speed: a.Speed, idle: a.IdleTimeout}
	for _, s := range a.Segments {
		c.length += s
	}
	return c, nil
}

func (c *Conveyor) Summary() confinit.Summary {
	state := confinit.None()
	if c.moving {
		state = confinit.Some("conveyor moving")
	}
	return confinit.Entry(
		confinit.Some(fmt.Sprintf("speed=%.1f,length=%d,idle=%s", c.speed, c.length, c.idle)),
		state,
	)
}

// Warehouse composes the summaries of its parts
type Warehouse struct {
	box      *Box
	conveyor *Conveyor
}

func (w *Warehouse) Summary() confinit.Summary {
	return confinit.Collect(w.box, w.conveyor)
}

// broken reports two parameters but only one state
type broken struct{}

func (broken) Summary() confinit.Summary {
	return confinit.NewSummary(
		[]confinit.Block{confinit.Some("p1"), confinit.Some("p2")},
		[]confinit.Block{confinit.Some("s1")},
	)
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	dir, err := os.MkdirTemp("", "confinit-example")
	if err != nil {
		logger.Fatal("failed to create work directory", zap.Error(err))
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, "warehouse.toml")
	if err := os.WriteFile(configPath, []byte(configText), 0644); err != nil {
		logger.Fatal("failed to write config", zap.Error(err))
	}

	// ---- Layered table: file, then WAREHOUSE_* environment, then CLI ----
	os.Setenv("WAREHOUSE_BOX_Y", "5")
	defer os.Unsetenv("WAREHOUSE_BOX_Y")

	tbl, err := confinit.NewBuilder().
		WithFile(configPath).
		WithEnvPrefix("WAREHOUSE_").
		WithArgs([]string{"--conveyor.speed=2.5"}).
		WithLogger(logger).
		Build()
	if err != nil {
		logger.Fatal("failed to build configuration", zap.Error(err))
	}

	// ---- Typed objects ----
	box, err := confinit.FromConfig[Box, BoxArgs](tbl, "box")
	if err != nil {
		logger.Fatal("failed to initialize box", zap.Error(err))
	}
	conveyor, err := confinit.FromConfigFunc(tbl, "conveyor", NewConveyor)
	if err != nil {
		logger.Fatal("failed to initialize conveyor", zap.Error(err))
	}
	conveyor.moving = true

	warehouse := &Warehouse{box: box, conveyor: conveyor}

	// ---- Summaries ----
	renderer := confinit.NewRenderer(os.Stdout).WithLogger(logger)

	fmt.Println("--- parameters ---")
	if err := renderer.PrintParameters(warehouse); err != nil {
		logger.Error("print failed", zap.Error(err))
	}
	fmt.Println("--- state ---")
	if err := renderer.PrintState(warehouse); err != nil {
		logger.Error("print failed", zap.Error(err))
	}

	summaryPath := filepath.Join(dir, "warehouse.summary")
	if err := renderer.SaveSummary(warehouse, summaryPath); err != nil {
		logger.Fatal("save failed", zap.Error(err))
	}
	saved, _ := os.ReadFile(summaryPath)
	fmt.Printf("--- saved %s ---\n%s", filepath.Base(summaryPath), saved)

	// ---- Failures are values ----
	if err := renderer.PrintSummary(broken{}); errors.Is(err, confinit.ErrSummaryLengthMismatch) {
		fmt.Println("rejected:", err)
	}

	bad, _ := confinit.Load("[box]\nx = 0\ny = 4\n")
	if _, err := confinit.FromConfig[Box, BoxArgs](bad, "box"); errors.Is(err, confinit.ErrSemanticInvalid) {
		fmt.Println("rejected:", err)
	}

	if _, err := confinit.FromConfig[Box, BoxArgs](tbl, "crate"); errors.Is(err, confinit.ErrMissingSection) {
		fmt.Println("rejected:", err)
	}
}
