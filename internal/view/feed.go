package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 16
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Kind    game.EventKind
	Message string
}

// EventFeed is a ring buffer of recent run events rendered beside the map.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends e unless it is too noisy to show.
func (f *EventFeed) Add(e game.Event) {
	if e.Kind == game.EventSoundEmitted {
		return
	}
	f.entries[f.head] = FeedEntry{Tick: e.Tick, Kind: e.Kind, Message: e.String()}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Recent returns entries oldest first.
func (f *EventFeed) Recent() []FeedEntry {
	out := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		out[i] = f.entries[idx]
	}
	return out
}

// Clear empties the feed.
func (f *EventFeed) Clear() {
	f.head, f.count = 0, 0
}

// feedColor tints a line by how bad the news is.
func feedColor(k game.EventKind) color.RGBA {
	switch k {
	case game.EventGuardSpotted, game.EventPlayerCaught, game.EventTimeExpired:
		return color.RGBA{R: 255, G: 90, B: 90, A: 255}
	case game.EventGuardAlerted:
		return color.RGBA{R: 255, G: 180, B: 60, A: 255}
	case game.EventTreasureCollected, game.EventKeyCollected, game.EventDoorsUnlocked, game.EventPowerupCollected:
		return color.RGBA{R: 255, G: 240, B: 120, A: 255}
	case game.EventLevelComplete, game.EventRunComplete:
		return color.RGBA{R: 0, G: 255, B: 160, A: 255}
	case game.EventEMPActivated, game.EventEMPExpired:
		return color.RGBA{R: 120, G: 200, B: 255, A: 255}
	default:
		return colText
	}
}

// Draw renders the panel at panelX, newest entry at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, fonts *Fonts, panelX, panelH int) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, feedPanelWidth, float32(panelH), color.RGBA{R: 8, G: 8, B: 24, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1.0, colGrid, false)

	vector.FillRect(screen, px, 0, feedPanelWidth, 22, color.RGBA{R: 20, G: 20, B: 50, A: 255}, false)
	fonts.Draw(screen, "EVENTS", fonts.Small, float64(panelX+8), 3, colAccent)
	vector.StrokeLine(screen, px, 22, px+feedPanelWidth, 22, 1.0, colGrid, false)

	entries := f.Recent()
	maxVisible := (panelH - 30) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	const highlight = 3

	y := 28
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 30, B: 70, A: 160}, false)
		}
		c := feedColor(e.Kind)
		vector.FillRect(screen, px+5, float32(y+5), 3, 6, c, false)
		line := fmt.Sprintf("%5d %s", e.Tick, e.Message)
		fonts.Draw(screen, line, fonts.Small, float64(panelX+12), float64(y), c)
		y += feedLineHeight
	}
}
