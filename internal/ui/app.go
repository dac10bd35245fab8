package ui

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"StudyInk/internal/chat"
	"StudyInk/internal/export"
	"StudyInk/internal/ink"
	inknet "StudyInk/internal/net"
	"StudyInk/internal/scripture"
	"StudyInk/internal/storage"
)

// Config carries everything the window needs from main.
type Config struct {
	Adapter   *storage.Adapter
	Scripture *scripture.Client
	Assistant *chat.Assistant // nil when no API key is configured
	ShareAddr string          // host:port peers can pull backups from, empty when disabled
}

var books = []string{
	"genesis", "exodus", "psalms", "proverbs", "isaiah",
	"matthew", "mark", "luke", "john", "acts", "romans", "revelation",
}

// RunApp builds the window and blocks until it closes.
func RunApp(cfg Config) {
	fyneApp := app.New()
	win := fyneApp.NewWindow("StudyInk")
	win.Resize(fyne.NewSize(1024, 768))

	tools := ink.NewToolState()
	ctrl := ink.NewController(tools, cfg.Adapter, 800, 600)
	surface := NewSurfaceWidget(ctrl)
	surface.SetActive(false)

	passage := widget.NewLabel("Pick a book and chapter to start reading.")
	passage.Wrapping = fyne.TextWrapWord

	status := widget.NewLabel("Ready")
	if cfg.ShareAddr != "" {
		status.SetText("Ready, sharing backups at " + cfg.ShareAddr)
	}

	book := "john"
	chapter := 3

	openChapter := func() {
		b, ch := book, chapter
		status.SetText(fmt.Sprintf("Loading %s %d...", b, ch))
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			text, err := cfg.Scripture.Chapter(ctx, b, ch)
			fyne.Do(func() {
				if err != nil {
					log.Printf("[UI] chapter fetch failed: %v", err)
					status.SetText(fmt.Sprintf("Could not load %s %d: %v", b, ch, err))
					return
				}
				passage.SetText(text)
				key := ink.SurfaceKey{Book: b, Chapter: ch, Panel: "main"}
				if err := ctrl.Switch(context.Background(), key); err != nil {
					status.SetText(fmt.Sprintf("Annotations unavailable: %v", err))
				} else {
					status.SetText(fmt.Sprintf("%s %d", titleCase(b), ch))
				}
				surface.SetNaturalHeight(passage.MinSize().Height)
				surface.Refresh()
			})
		}()
	}

	bookSelect := widget.NewSelect(books, func(b string) {
		book = b
		chapter = 1
		openChapter()
	})
	bookSelect.SetSelected(book)

	chapterLabel := widget.NewLabel(fmt.Sprintf("%d", chapter))
	prevBtn := widget.NewButton("<", func() {
		if chapter > 1 {
			chapter--
			chapterLabel.SetText(fmt.Sprintf("%d", chapter))
			openChapter()
		}
	})
	nextBtn := widget.NewButton(">", func() {
		chapter++
		chapterLabel.SetText(fmt.Sprintf("%d", chapter))
		openChapter()
	})

	drawCheck := widget.NewCheck("Draw", func(on bool) {
		surface.SetActive(on)
	})

	askBtn := widget.NewButton("Ask", func() {
		if cfg.Assistant == nil {
			dialog.ShowInformation("Assistant", "Set OPENAI_API_KEY to enable the study assistant.", win)
			return
		}
		entry := widget.NewEntry()
		entry.SetPlaceHolder("What does verse 16 mean?")
		items := []*widget.FormItem{widget.NewFormItem("Question", entry)}
		dialog.ShowForm("Ask about this passage", "Ask", "Cancel", items, func(ok bool) {
			if !ok || entry.Text == "" {
				return
			}
			question := entry.Text
			status.SetText("Asking...")
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				answer, err := cfg.Assistant.Ask(ctx, passage.Text, question)
				fyne.Do(func() {
					if err != nil {
						status.SetText(fmt.Sprintf("Assistant error: %v", err))
						return
					}
					status.SetText("Ready")
					dialog.ShowInformation("Assistant", answer, win)
				})
			}()
		}, win)
	})

	exportBtn := widget.NewButton("Export PDF", func() {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		out := filepath.Join(home, fmt.Sprintf("studyink-%s-%d.pdf", book, chapter))
		w, _ := ctrl.Raster().Size()
		title := fmt.Sprintf("%s %d", titleCase(book), chapter)
		if err := export.ChapterPDF(out, title, passage.Text, ctrl.Store().Paths(), float64(w)); err != nil {
			status.SetText(fmt.Sprintf("Export failed: %v", err))
			return
		}
		status.SetText("Exported " + out)
	})

	syncBtn := widget.NewButton("Sync", func() {
		status.SetText("Looking for peers...")
		go func() {
			var peer string
			err := inknet.Browse(func(addr string) {
				if peer == "" {
					peer = addr
				}
			})
			if err == nil && peer == "" {
				err = fmt.Errorf("no peers found")
			}
			var pulled int
			if err == nil {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				pulled, err = inknet.Pull(ctx, peer, cfg.Adapter)
			}
			fyne.Do(func() {
				if err != nil {
					status.SetText(fmt.Sprintf("Sync failed: %v", err))
					return
				}
				status.SetText(fmt.Sprintf("Pulled %d surfaces from %s", pulled, peer))
				openChapter() // reload, the pull may have replaced this surface
			})
		}()
	})

	handle := newExpandHandle(func(dy float64) {
		ctrl.Expand(dy)
		surface.Refresh()
	})

	nav := container.NewHBox(
		bookSelect, prevBtn, chapterLabel, nextBtn,
		widget.NewSeparator(),
		drawCheck, askBtn, exportBtn, syncBtn,
	)
	top := container.NewVBox(
		NewToolbar(tools, ctrl.Undo, ctrl.Clear),
		nav,
	)
	page := container.NewVBox(
		container.NewStack(passage, surface),
		container.NewCenter(handle),
	)
	content := container.NewBorder(top, status, nil, nil, container.NewVScroll(page))
	win.SetContent(content)

	ticker := time.NewTicker(16 * time.Millisecond)
	go func() {
		for range ticker.C {
			fyne.Do(surface.Tick)
		}
	}()
	win.SetOnClosed(func() {
		ticker.Stop()
		if err := ctrl.Flush(context.Background()); err != nil {
			log.Printf("[UI] final flush failed: %v", err)
		}
	})

	openChapter()
	win.ShowAndRun()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
