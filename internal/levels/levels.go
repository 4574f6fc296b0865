// Package levels reads arena layouts from the XML level format and serves
// them to the game as a numbered campaign.
package levels

import (
	"embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"

	"github.com/Garsondee/Battle-Arena/internal/game"
)

//go:embed data/*.xml
var embedded embed.FS

// ErrLevelNotFound is returned when a level number has no file.
var ErrLevelNotFound = errors.New("level not found")

// --- XML document ---

type levelConfig struct {
	XMLName xml.Name   `xml:"levelConfig"`
	Levels  []levelXML `xml:"level"`
}

type levelXML struct {
	Name    string      `xml:"name,attr"`
	Players []placedXML `xml:"players>player"`
	Enemies []placedXML `xml:"enemies>enemy"`
	Objects []placedXML `xml:"staticObjects>staticObject"`
}

type placedXML struct {
	ID   string  `xml:"id,attr"`
	Type string  `xml:"type,attr"`
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
}

var enemyTypes = map[string]game.TankKind{
	"regularEnemy":  game.TankBasic,
	"heavyEnemy":    game.TankArmored,
	"fastEnemy":     game.TankFast,
	"powerfulEnemy": game.TankPowerful,
}

var objectTypes = map[string]game.BlockKind{
	"brickBlock":  game.BlockBrick,
	"waterBlock":  game.BlockWater,
	"steelBlock":  game.BlockSteel,
	"forestBlock": game.BlockForest,
	"baseBlock":   game.BlockBase,
}

var playerSlots = map[string]int{
	"player1": 1,
	"player2": 2,
}

// anchor converts a cell-centre coordinate to a top-left anchor, clamped at 0.
func anchor(p placedXML) game.Position {
	half := float64(game.CellSize) / 2
	return game.Position{X: math.Max(0, p.X-half), Y: math.Max(0, p.Y-half)}
}

// Parse reads one level document. Unknown enemy or block types are skipped
// with a warning. A document without a <level> element yields an empty spec.
func Parse(r io.Reader, logger *slog.Logger) (game.LevelSpec, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var doc levelConfig
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return game.LevelSpec{}, fmt.Errorf("decoding level xml: %w", err)
	}
	if len(doc.Levels) == 0 {
		return game.LevelSpec{}, nil
	}
	lx := doc.Levels[0]

	spec := game.LevelSpec{Name: lx.Name, Spawns: map[int]game.Position{}}
	for _, p := range lx.Players {
		slot, ok := playerSlots[p.ID]
		if !ok {
			logger.Warn("Unknown player id", "id", p.ID)
			continue
		}
		spec.Spawns[slot] = anchor(p)
	}
	for _, e := range lx.Enemies {
		kind, ok := enemyTypes[e.Type]
		if !ok {
			logger.Warn("Unknown enemy type", "type", e.Type)
			continue
		}
		spec.Enemies = append(spec.Enemies, game.EnemySpec{Kind: kind, Pos: anchor(e)})
	}
	for _, o := range lx.Objects {
		kind, ok := objectTypes[o.Type]
		if !ok {
			logger.Warn("Unknown block type", "type", o.Type)
			continue
		}
		spec.Objects = append(spec.Objects, game.ObjectSpec{Kind: kind, Pos: anchor(o)})
	}
	return spec, nil
}

// --- Sources ---

// Loader is a game.LevelSource backed by Level<N>.xml files in a file system.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger
}

// NewLoader serves levels from fsys.
func NewLoader(fsys fs.FS, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fsys: fsys, logger: logger}
}

// Dir serves levels from a directory on disk.
func Dir(dir string, logger *slog.Logger) *Loader {
	return NewLoader(os.DirFS(dir), logger)
}

// Embedded serves the built-in campaign.
func Embedded(logger *slog.Logger) *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return NewLoader(sub, logger)
}

func fileName(n int) string {
	return fmt.Sprintf("Level%d.xml", n)
}

// Exists reports whether level n has a file.
func (l *Loader) Exists(n int) bool {
	if n < 1 {
		return false
	}
	_, err := fs.Stat(l.fsys, fileName(n))
	return err == nil
}

// Load parses level n.
func (l *Loader) Load(n int) (game.LevelSpec, error) {
	f, err := l.fsys.Open(fileName(n))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return game.LevelSpec{}, fmt.Errorf("level %d: %w", n, ErrLevelNotFound)
		}
		return game.LevelSpec{}, fmt.Errorf("opening level %d: %w", n, err)
	}
	defer f.Close()

	spec, err := Parse(f, l.logger.With("level", n))
	if err != nil {
		return game.LevelSpec{}, fmt.Errorf("level %d: %w", n, err)
	}
	if spec.Name == "" {
		spec.Name = fmt.Sprintf("Level %d", n)
	}
	return spec, nil
}

// Count returns how many consecutive levels exist starting at 1.
func (l *Loader) Count() int {
	n := 0
	for l.Exists(n + 1) {
		n++
	}
	return n
}
