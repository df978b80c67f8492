package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lrclab/internal/engine"
	"lrclab/internal/project"
)

// parses a time argument given either as plain seconds ("63.4") or as
// minutes:seconds ("1:03.40")
func parseTimeSpec(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time value")
	}

	if minutes, seconds, ok := strings.Cut(s, ":"); ok {
		m, err := strconv.Atoi(minutes)
		if err != nil || m < 0 {
			return 0, fmt.Errorf("invalid minutes in %q", s)
		}
		sec, err := strconv.ParseFloat(seconds, 64)
		if err != nil || sec < 0 {
			return 0, fmt.Errorf("invalid seconds in %q", s)
		}
		return float64(m)*60 + sec, nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid time %q (want seconds or mm:ss.ss)", s)
	}
	return value, nil
}

// loads the project, runs fn over the engine, and saves the result when
// fn reports a change
func withProject(fn func(ctx context.Context, eng *engine.Engine) (changed bool, err error)) error {
	ctx := context.Background()

	store, err := project.Open(resolveProject())
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	eng, videoPath, err := store.Load(ctx)
	if err != nil {
		return err
	}

	changed, err := fn(ctx, eng)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return store.Save(ctx, videoPath, eng)
}

// fails early with a friendly message when no video has been loaded yet
func requireTimeline(eng *engine.Engine) error {
	if eng.Timeline() == nil {
		return fmt.Errorf("project has no video loaded: run 'lrclab new' first")
	}
	return nil
}
