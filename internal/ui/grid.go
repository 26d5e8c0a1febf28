package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"fynebox/internal/catalog"
)

const (
	// targetRowHeight is the preferred height of a grid row before
	// justification.
	targetRowHeight float32 = 160
	// gridPadding approximates the spacing the layout adds around each
	// cell when justifying a row.
	gridPadding float32 = 4
)

// gridRow is one justified row of the thumbnail grid. Cells [start,end)
// share the row and render at height.
type gridRow struct {
	start, end int
	height     float32
}

// packRows lays photos with the given aspect ratios into rows no wider
// than maxWidth. Each full row is scaled so its cells exactly fill the
// width; the final partial row keeps the target height.
func packRows(ratios []float32, maxWidth, targetHeight float32) []gridRow {
	if maxWidth <= 0 || targetHeight <= 0 {
		return nil
	}
	var rows []gridRow
	start := 0
	var sum float32
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		sum += r*targetHeight + gridPadding
		if sum < maxWidth {
			continue
		}
		// Row is full. Shrink it so the cells fit the width exactly.
		var rowRatio float32
		for _, rr := range ratios[start : i+1] {
			if rr <= 0 {
				rr = 1
			}
			rowRatio += rr
		}
		cells := float32(i + 1 - start)
		height := (maxWidth - cells*gridPadding) / rowRatio
		if height > targetHeight {
			height = targetHeight
		}
		rows = append(rows, gridRow{start: start, end: i + 1, height: height})
		start = i + 1
		sum = 0
	}
	if start < len(ratios) {
		rows = append(rows, gridRow{start: start, end: len(ratios), height: targetHeight})
	}
	return rows
}

// buildGrid renders the catalog as justified thumbnail rows.
func (a *App) buildGrid(cat *catalog.Catalog) fyne.CanvasObject {
	return a.newGridArea(cat, a.gridWidth())
}

// gridArea hosts the justified rows and repacks them whenever its
// width changes, so a window resize reflows the grid.
type gridArea struct {
	widget.BaseWidget
	app    *App
	cat    *catalog.Catalog
	ratios []float32

	rows        *fyne.Container
	scroll      *container.Scroll
	packedWidth float32
}

func (a *App) newGridArea(cat *catalog.Catalog, width float32) *gridArea {
	g := &gridArea{app: a, cat: cat}
	g.ratios = make([]float32, cat.Size())
	for i := range g.ratios {
		p, _ := cat.At(i)
		g.ratios[i] = p.AspectRatio()
	}
	g.rows = container.NewVBox()
	g.scroll = container.NewVScroll(g.rows)
	g.repack(width)
	g.ExtendBaseWidget(g)
	return g
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (g *gridArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(g.scroll)
}

// Resize reflows the rows when the available width changes.
func (g *gridArea) Resize(size fyne.Size) {
	g.BaseWidget.Resize(size)
	if size.Width > 0 && size.Width != g.packedWidth {
		g.repack(size.Width)
	}
}

func (g *gridArea) repack(width float32) {
	g.packedWidth = width
	g.rows.Objects = nil
	for _, row := range packRows(g.ratios, width, targetRowHeight) {
		cells := make([]fyne.CanvasObject, 0, row.end-row.start)
		for i := row.start; i < row.end; i++ {
			p, err := g.cat.At(i)
			if err != nil {
				continue
			}
			cells = append(cells, g.app.buildCell(p, i, row.height))
		}
		g.rows.Add(container.NewHBox(cells...))
	}
	g.rows.Refresh()
}

func (a *App) buildCell(p catalog.Photo, index int, height float32) fyne.CanvasObject {
	t := newThumbnail(nil, index, a.router)
	t.SetMinSize(fyne.NewSize(p.AspectRatio()*height, height))
	t.SetResource(a.imageManager.Thumbnail(p, t.SetResource))
	return t
}

func (a *App) gridWidth() float32 {
	if a.UI.MainWin == nil {
		return 1024
	}
	w := a.UI.MainWin.Canvas().Size().Width
	if w < 320 {
		w = 1024
	}
	return w
}

// DisplayThumbnailGrid swaps the content area to the grid and rebuilds
// the navigation stack for the freshly loaded catalog.
func (a *App) DisplayThumbnailGrid(cat *catalog.Catalog) {
	fyne.Do(func() {
		a.attachCatalog(cat)
		a.setContent(a.buildGrid(cat))
		a.statusManager.AddMessage(fmt.Sprintf("Loaded %d photos", cat.Size()))
	})
}

// ShowEmptyState replaces the grid with a friendly placeholder.
func (a *App) ShowEmptyState() {
	fyne.Do(func() {
		a.attachCatalog(catalog.New(nil))
		a.setContent(container.NewCenter(widget.NewLabel("No photos to show")))
		a.statusManager.AddMessage("Gallery is empty")
	})
}

// ShowErrorState replaces the grid with the load failure notice. There
// is no retry control; reloading means restarting with a good source.
func (a *App) ShowErrorState(err error) {
	fyne.Do(func() {
		msg := widget.NewLabel("Could not load the gallery")
		msg.TextStyle.Bold = true
		detail := widget.NewLabel(err.Error())
		detail.Wrapping = fyne.TextWrapWord
		a.setContent(container.NewCenter(container.NewVBox(msg, detail, layout.NewSpacer())))
		a.statusManager.AddMessage("Load failed: " + err.Error())
	})
}
