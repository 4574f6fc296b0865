package game

// BlockKind identifies a terrain tile.
type BlockKind int

const (
	BlockBrick BlockKind = iota
	BlockSteel
	BlockWater
	BlockForest
	BlockBase
	BlockWreck // left behind where a tank was destroyed
)

func (k BlockKind) String() string {
	switch k {
	case BlockBrick:
		return "brick"
	case BlockSteel:
		return "steel"
	case BlockWater:
		return "water"
	case BlockForest:
		return "forest"
	case BlockBase:
		return "base"
	case BlockWreck:
		return "wreck"
	default:
		return "unknown"
	}
}

// Indestructible is the life value of blocks that bullets cannot wear down.
const Indestructible = -1

// blockProfile is the static behaviour of one block kind.
type blockProfile struct {
	life           int
	blocksBullets  bool
	blocksMovement bool
	impact         Cue // CueNone when the impact is silent
}

var blockProfiles = map[BlockKind]blockProfile{
	BlockBrick:  {life: 3, blocksBullets: true, blocksMovement: true, impact: CueBrickHit},
	BlockSteel:  {life: Indestructible, blocksBullets: true, blocksMovement: true},
	BlockWater:  {life: Indestructible, blocksBullets: false, blocksMovement: true},
	BlockForest: {life: Indestructible, blocksBullets: false, blocksMovement: false},
	BlockBase:   {life: 1, blocksBullets: true, blocksMovement: true, impact: CueBaseDestroyed},
	BlockWreck:  {life: Indestructible, blocksBullets: true, blocksMovement: true},
}

// Block is a static terrain tile at a fixed position.
type Block struct {
	kind           BlockKind
	pos            Position
	size           float64
	life           int
	blocksBullets  bool
	blocksMovement bool
	impact         Cue
}

// NewBlock creates a full-cell block of the given kind anchored at pos.
func NewBlock(kind BlockKind, pos Position) *Block {
	p := blockProfiles[kind]
	size := float64(CellSize)
	if kind == BlockWreck {
		size = TankSize
	}
	return &Block{
		kind:           kind,
		pos:            pos,
		size:           size,
		life:           p.life,
		blocksBullets:  p.blocksBullets,
		blocksMovement: p.blocksMovement,
		impact:         p.impact,
	}
}

// newWreck places a wreck over the collision box of a tank anchored at p.
func newWreck(p Position) *Block {
	return NewBlock(BlockWreck, Position{X: p.X + TankInset, Y: p.Y + TankInset})
}

// OnBulletImpact wears a destructible block down by one and reports whether
// the block absorbs the bullet.
func (b *Block) OnBulletImpact() bool {
	if b.life > 0 {
		b.life--
	}
	return b.blocksBullets
}

// Exists reports whether the block is still part of the level.
func (b *Block) Exists() bool {
	return b.life > 0 || b.life == Indestructible
}

func (b *Block) BlocksMovement() bool { return b.blocksMovement }
func (b *Block) BlocksBullets() bool  { return b.blocksBullets }
func (b *Block) Kind() BlockKind      { return b.kind }
func (b *Block) Position() Position   { return b.pos }
func (b *Block) Life() int            { return b.life }

// ImpactCue is the cue signalled whenever a bullet touches this block.
func (b *Block) ImpactCue() Cue { return b.impact }

// Bounds is the block's collision box.
func (b *Block) Bounds() Rect {
	return Rect{X: b.pos.X, Y: b.pos.Y, W: b.size, H: b.size}
}
