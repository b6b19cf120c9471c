//go:build !nogui

// Package gui is the desktop host, built on fyne. A single goroutine
// drives the coordinator and updates the window after every tick.
package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"glance/internal/config"
	"glance/internal/coordinator"
	"glance/internal/log"
	"glance/internal/preview"
	"glance/internal/render"
	"glance/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	windowTitle   = "glance"
	defaultWidth  = 800
	defaultHeight = 600
)

// Window shows the current preview: a heading, a scrollable body and a
// status line
type Window struct {
	app   fyne.App
	win   fyne.Window
	coord *coordinator.Coordinator
	idle  time.Duration

	heading *widget.Label
	body    *fyne.Container
	scroll  *container.Scroll
	status  *widget.Label

	// mu serializes ticks with window teardown
	mu       sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
}

// NewWindow builds the preview window on a; nothing runs until Run or
// Tick is called
func NewWindow(a fyne.App, coord *coordinator.Coordinator, cfg *config.Config) *Window {
	w := &Window{
		app:     a,
		win:     a.NewWindow(windowTitle),
		coord:   coord,
		idle:    cfg.IdleInterval(),
		heading: widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		body:    container.NewVBox(),
		status:  widget.NewLabel(""),
		stop:    make(chan struct{}),
	}
	w.heading.Truncation = fyne.TextTruncateEllipsis
	w.scroll = container.NewVScroll(w.body)

	w.win.SetContent(container.NewBorder(w.heading, w.status, nil, nil, w.scroll))
	w.win.Resize(fyne.NewSize(defaultWidth, defaultHeight))
	w.win.SetCloseIntercept(func() {
		w.Close()
	})
	return w
}

// Available is the body area in device independent pixels
func (w *Window) Available() types.Size {
	size := w.scroll.Size()
	return types.NewSize(int(size.Width), int(size.Height))
}

// Tick runs one coordinator tick and redraws when the preview changed
func (w *Window) Tick() coordinator.Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := w.coord.Tick(w.Available)
	if out.Changed() {
		w.show()
	}
	w.status.SetText(statusText(w.coord))
	return out
}

// show lays out the borrowed current preview. Widgets are rebuilt so no
// reference to an older preview survives.
func (w *Window) show() {
	current := w.coord.Current()
	block := render.Layout(current, w.Available())

	w.heading.SetText(block.Heading)
	w.body.RemoveAll()
	for _, obj := range bodyObjects(block) {
		w.body.Add(obj)
	}
	w.scroll.ScrollToTop()
	w.body.Refresh()
}

func bodyObjects(b render.Block) []fyne.CanvasObject {
	var objs []fyne.CanvasObject

	if b.Image != nil {
		img := canvas.NewImageFromImage(b.Image)
		img.FillMode = canvas.ImageFillContain
		img.ScaleMode = canvas.ImageScaleSmooth
		bounds := b.Image.Bounds()
		img.SetMinSize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))
		objs = append(objs, img)
	}

	if len(b.Lines) == 0 {
		return objs
	}
	label := widget.NewLabelWithStyle(strings.Join(b.Lines, "\n"), fyne.TextAlignLeading, fyne.TextStyle{Monospace: b.Kind == preview.KindText})
	if b.Kind == preview.KindError {
		label.Wrapping = fyne.TextWrapWord
	}
	return append(objs, label)
}

func statusText(c *coordinator.Coordinator) string {
	var parts []string
	if current := c.Current(); current != nil {
		parts = append(parts, current.Kind().String())
	}
	switch live := c.LiveSources(); live {
	case 0:
	case 1:
		parts = append(parts, "1 source")
	default:
		parts = append(parts, fmt.Sprintf("%d sources", live))
	}
	return strings.Join(parts, " · ")
}

// Run shows the window and blocks in the fyne event loop until the
// window is closed or every source has closed
func (w *Window) Run() {
	go w.loop()
	w.win.ShowAndRun()
}

func (w *Window) loop() {
	for {
		select {
		case <-w.stop:
			return
		default:
		}

		if out := w.Tick(); out.Quit {
			log.Debug("All sources closed, closing window")
			w.Close()
			return
		}
		w.coord.Wait(w.idle)
	}
}

// Close stops ticking and quits the application
func (w *Window) Close() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.mu.Lock()
		defer w.mu.Unlock()
		w.app.Quit()
	})
}
