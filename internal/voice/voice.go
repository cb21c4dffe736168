// Package voice speaks short guidance prompts. At most one announcement is in
// flight; starting a new one cuts off the previous.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"krishiconnect/internal/i18n"
)

// ErrInterrupted is returned by Announce when a newer announcement cut this one off
var ErrInterrupted = errors.New("announcement interrupted")

// Speaker renders text as speech in the given locale. Speak must return
// promptly once ctx is cancelled.
type Speaker interface {
	Speak(ctx context.Context, text, voiceLang string) error
}

type announcement struct {
	text   string
	cancel context.CancelFunc
}

// Announcer gates a Speaker behind a single slot
type Announcer struct {
	speaker Speaker
	enabled atomic.Bool
	current atomic.Pointer[announcement]
}

func NewAnnouncer(speaker Speaker, enabled bool) *Announcer {
	a := &Announcer{speaker: speaker}
	a.enabled.Store(enabled)
	return a
}

func (a *Announcer) SetEnabled(enabled bool) {
	a.enabled.Store(enabled)
	if !enabled {
		a.Stop()
	}
}

func (a *Announcer) Enabled() bool { return a.enabled.Load() }

// Speaking reports whether an announcement is in flight
func (a *Announcer) Speaking() bool { return a.current.Load() != nil }

// Current is the text being spoken, or "" when idle
func (a *Announcer) Current() string {
	if cur := a.current.Load(); cur != nil {
		return cur.text
	}
	return ""
}

// Announce speaks text and blocks until it finishes or is cut off.
// A disabled announcer does nothing.
func (a *Announcer) Announce(ctx context.Context, text, voiceLang string) error {
	if !a.enabled.Load() || text == "" {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mine := &announcement{text: text, cancel: cancel}
	if prev := a.current.Swap(mine); prev != nil {
		prev.cancel()
	}

	err := a.speaker.Speak(ctx, text, voiceLang)
	superseded := !a.current.CompareAndSwap(mine, nil)

	if err != nil {
		if superseded && errors.Is(err, context.Canceled) {
			return ErrInterrupted
		}
		return fmt.Errorf("failed to speak: %w", err)
	}
	return nil
}

// Stop cuts off the announcement in flight, if any
func (a *Announcer) Stop() {
	if cur := a.current.Swap(nil); cur != nil {
		cur.cancel()
	}
}

// Guide speaks string-table keys in the user's language
type Guide struct {
	catalog   *i18n.Catalog
	announcer *Announcer
}

func NewGuide(catalog *i18n.Catalog, announcer *Announcer) *Guide {
	return &Guide{catalog: catalog, announcer: announcer}
}

// Say looks key up for lang and announces it
func (g *Guide) Say(ctx context.Context, lang, key string) error {
	return g.announcer.Announce(ctx, g.catalog.T(lang, key), g.catalog.VoiceLang(lang))
}

// TerminalSpeaker prints announcements instead of synthesizing audio
type TerminalSpeaker struct {
	W io.Writer
}

func (s TerminalSpeaker) Speak(ctx context.Context, text, voiceLang string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.W, "🔊 [%s] %s\n", voiceLang, text)
	return err
}
