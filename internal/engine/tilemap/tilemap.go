// Package tilemap provides the engine's tile map model: a fixed grid of
// typed tiles with pixel-level queries, built from rows of tile codes.
package tilemap

// Kind classifies a tile.
type Kind int

const (
	KindEmpty Kind = iota
	KindWall
	KindSpike
	KindPickup
)

// Tile is a single cell of the map.
type Tile struct {
	Kind   Kind
	Solid  bool
	Damage int
}

// Map is a loaded tile map. Coordinates outside the grid resolve to a
// solid wall so physics and cameras cannot escape the map.
type Map struct {
	Width    int
	Height   int
	TileSize int
	SpawnX   int
	SpawnY   int

	tiles [][]Tile
}

// Legend maps a tile code (one rune of a row string) to its tile.
type Legend map[rune]Tile

// New builds a map from rows of tile codes. Codes missing from the legend
// become empty tiles; short rows are padded with empty tiles.
func New(rows []string, legend Legend, tileSize int) *Map {
	height := len(rows)
	width := 0
	for _, row := range rows {
		if len([]rune(row)) > width {
			width = len([]rune(row))
		}
	}

	tiles := make([][]Tile, height)
	for y, row := range rows {
		tiles[y] = make([]Tile, width)
		for x, code := range []rune(row) {
			if tile, ok := legend[code]; ok {
				tiles[y][x] = tile
			}
		}
	}

	return &Map{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		tiles:    tiles,
	}
}

// TileAt returns the tile at grid coordinates. Out-of-range coordinates
// return a solid wall.
func (m *Map) TileAt(tx, ty int) Tile {
	if tx < 0 || tx >= m.Width || ty < 0 || ty >= m.Height {
		return Tile{Kind: KindWall, Solid: true}
	}
	return m.tiles[ty][tx]
}

// TileAtPixel returns the tile under a pixel position.
func (m *Map) TileAtPixel(px, py int) Tile {
	if px < 0 || py < 0 {
		return Tile{Kind: KindWall, Solid: true}
	}
	return m.TileAt(px/m.TileSize, py/m.TileSize)
}

// IsSolidAt reports whether the tile under a pixel position is solid.
func (m *Map) IsSolidAt(px, py int) bool {
	return m.TileAtPixel(px, py).Solid
}

// SetTile replaces the tile at grid coordinates. Out-of-range writes are
// ignored.
func (m *Map) SetTile(tx, ty int, tile Tile) {
	if tx < 0 || tx >= m.Width || ty < 0 || ty >= m.Height {
		return
	}
	m.tiles[ty][tx] = tile
}

// PixelWidth returns the map width in pixels.
func (m *Map) PixelWidth() int {
	return m.Width * m.TileSize
}

// PixelHeight returns the map height in pixels.
func (m *Map) PixelHeight() int {
	return m.Height * m.TileSize
}

// Find returns the grid coordinates of every tile of the given kind.
func (m *Map) Find(kind Kind) [][2]int {
	var out [][2]int
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.tiles[y][x].Kind == kind {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}
