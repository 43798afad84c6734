// Outloud is a terminal screen reader: it fetches a page, narrates its
// content through a speech synthesizer, and navigates by keyboard.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"outloud/config"
	"outloud/fetcher"
	"outloud/history"
	"outloud/html"
	"outloud/logging"
	"outloud/mode"
	"outloud/reader"
	"outloud/render"
	"outloud/speech"
)

func main() {
	url := ""
	initConfig := false
	debug := false

	for _, arg := range os.Args[1:] {
		switch arg {
		case "--init-config":
			initConfig = true
		case "--debug":
			debug = true
		case "-h", "--help":
			printUsage()
			return
		default:
			if url == "" {
				url = arg
			}
		}
	}

	if initConfig {
		fmt.Print(config.DefaultTOML())
		return
	}

	if err := run(url, debug); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Outloud - Terminal Screen Reader

Usage: outloud [options] [url]

Options:
  --init-config     Output default config (redirect to ~/.config/outloud/config.toml)
  --debug           Verbose logging to the log file
  -h, --help        Show this help

Examples:
  outloud                         Open the landing page
  outloud https://example.com     Read a page aloud
  outloud --init-config > ~/.config/outloud/config.toml

Keys (press ? at any time to hear the current mode's keys):
  p  start or pause reading       j/k  next / previous item
  t  explore a table              o    open a URL
  q  quit`)
}

func run(url string, debug bool) error {
	logging.Setup(debug)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fetcher.Configure(fetcher.Options{
		UserAgent:      cfg.Fetcher.UserAgent,
		TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
		ChromePath:     cfg.Fetcher.ChromePath,
	})
	cache, err := fetcher.NewCache(fetcher.DefaultCacheDir(),
		time.Duration(cfg.Fetcher.CacheMinutes)*time.Minute)
	if err != nil {
		logrus.WithError(err).Warn("page cache unavailable")
		cache, _ = fetcher.NewCache("", 0)
	}

	hist, err := history.Open(history.DefaultPath())
	if err != nil {
		logrus.WithError(err).Warn("history unavailable")
		hist = nil
	} else {
		defer hist.Close()
	}

	engine := speech.Detect(speech.EngineConfig{
		Binary:         cfg.Speech.Binary,
		Voice:          cfg.Speech.Voice,
		WordsPerMinute: cfg.Speech.WordsPerM,
	})
	voice := speech.New(engine)
	defer voice.Close()

	session := reader.NewSession(voice, sessionKeys(cfg.Keybindings))

	terminal, err := render.NewTerminal(os.Stdin)
	if err != nil {
		return fmt.Errorf("not a terminal: %w", err)
	}
	if err := terminal.EnterRawMode(); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer terminal.RestoreMode()

	render.EnterAltScreen(os.Stdout)
	defer render.ExitAltScreen(os.Stdout)

	canvas, err := render.NewCanvasFromTerminal()
	if err != nil {
		return err
	}

	var tree *html.Tree
	currentURL := url

	redraw := func() {
		view := render.View{
			Tree:     tree,
			Mode:     session.Mode(),
			Bindings: session.Keys().Bindings(session.Mode()),
			Rate:     voice.Rate(),
			Prompt:   session.Editor(),
		}
		if session.Mode() == mode.Table && session.TableNav().Table() != nil {
			row, col := session.TableNav().Position()
			view.Grid = render.NewGrid(session.TableNav().Table(), row, col)
		}
		view.Draw(canvas)
		canvas.RenderTo(os.Stdout)
	}

	loadPage := func(target string) {
		doc, err := openPage(target, cache, hist)
		if err != nil {
			logrus.WithError(err).WithField("url", target).Error("page load failed")
			voice.Speak("Sorry, that page could not be loaded.", nil, nil)
			return
		}
		tree = doc
		currentURL = target
		session.SetLocation(target)
		session.SetDocument(tree)
		session.Begin()
		redraw()
	}

	session.OnNavigate = func(href string) {
		loadPage(resolveURL(currentURL, href))
	}
	session.OnModeChange = redraw

	if url == "" {
		tree = landingPage(hist)
		session.SetDocument(tree)
		session.Begin()
	} else {
		loadPage(normalizeURL(url))
	}
	redraw()

	// Resize redraws in the background; raw-mode reads stay on this
	// goroutine.
	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	go func() {
		for range resizeCh {
			if c, err := render.NewCanvasFromTerminal(); err == nil {
				canvas = c
				redraw()
			}
		}
	}()

	buf := make([]byte, 8)
	for !session.Done() {
		// Engine callbacks run here, on the same goroutine as key
		// handling, so narration order matches request order.
		for delivered := true; delivered; {
			select {
			case ev := <-voice.Events():
				voice.Deliver(ev)
				redraw()
			default:
				delivered = false
			}
		}

		n, _ := os.Stdin.Read(buf)
		if n == 0 {
			continue
		}
		if key := render.DecodeKey(buf, n); key != "" {
			session.HandleKey(key)
			redraw()
		}
	}

	return nil
}

// sessionKeys maps the config's keybinding overrides onto the session's
// rebindable commands.
func sessionKeys(kb config.Keybindings) reader.Keys {
	keys := reader.DefaultKeys()
	apply := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	apply(&keys.Advance, kb.Advance)
	apply(&keys.Retreat, kb.Retreat)
	apply(&keys.Repeat, kb.Repeat)
	apply(&keys.Activate, kb.Activate)
	apply(&keys.Table, kb.Table)
	apply(&keys.PauseResume, kb.PauseResume)
	apply(&keys.RateUp, kb.RateUp)
	apply(&keys.RateDown, kb.RateDown)
	apply(&keys.OpenURL, kb.OpenUrl)
	apply(&keys.Help, kb.Help)
	apply(&keys.Quit, kb.Quit)
	return keys
}

// openPage fetches and parses a page, consulting the cache first and
// recording the visit.
func openPage(url string, cache *fetcher.Cache, hist *history.Store) (*html.Tree, error) {
	result := cache.Lookup(url)
	if result == nil {
		fetched, err := fetcher.Smart(url)
		if err != nil {
			return nil, err
		}
		cache.Store(url, fetched)
		result = fetched
		logrus.WithFields(logrus.Fields{
			"url":     url,
			"browser": fetched.UsedBrowser,
			"took":    fetched.FetchTime,
		}).Info("fetched page")
	}

	tree, err := html.ParseString(result.HTML)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	if hist != nil {
		if err := hist.Record(url, tree.Title); err != nil {
			logrus.WithError(err).Warn("recording visit")
		}
	}
	return tree, nil
}

// landingPage synthesizes the start screen: a short welcome plus links
// to recently visited pages.
func landingPage(hist *history.Store) *html.Tree {
	tree := html.NewTree()
	tree.Title = "Outloud"

	tree.Append(&html.Node{Category: html.Heading, Level: 1, Text: "Welcome to Outloud"})
	tree.Append(&html.Node{Category: html.Paragraph,
		Text: "This reader narrates web pages aloud. Press O. to open a URL, or pick a recent page below."})

	if hist != nil {
		if visits, err := hist.Recent(10); err == nil && len(visits) > 0 {
			tree.Append(&html.Node{Category: html.Heading, Level: 2, Text: "Recent pages"})
			for _, v := range visits {
				tree.Append(&html.Node{Category: html.Link, Text: v.Title, Href: v.URL})
			}
		}
	}

	tree.InjectControls([]string{"Open a URL", "Help"})
	return tree
}

// normalizeURL fills in a missing scheme so "example.com" just works.
func normalizeURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

// resolveURL resolves an href against the current page's URL.
func resolveURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if href == "" {
		return base
	}

	if strings.HasPrefix(href, "//") {
		if strings.HasPrefix(base, "http://") {
			return "http:" + href
		}
		return "https:" + href
	}

	if strings.HasPrefix(href, "/") {
		idx := strings.Index(base, "://")
		if idx == -1 {
			return href
		}
		rest := base[idx+3:]
		if slash := strings.Index(rest, "/"); slash != -1 {
			return base[:idx+3+slash] + href
		}
		return base + href
	}

	if lastSlash := strings.LastIndex(base, "/"); lastSlash > strings.Index(base, "://")+2 {
		return base[:lastSlash+1] + href
	}
	return base + "/" + href
}
