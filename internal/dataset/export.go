package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	ioutils "github.com/icbhi/respiratory-sounds/internal/io"
)

// ExportWaveforms renders a PNG waveform preview for every recording in
// the table and writes them under the configured waveform directory, named
// after the recording's file stem.
//
// Rendering runs with bounded concurrency (WaveformMaxConcurrent). A
// recording that fails to render is reported as a warning and skipped;
// the export continues. Returns the number of previews written.
func (m *Manager) ExportWaveforms(ctx context.Context) (int, error) {
	table, err := m.Recordings(ctx)
	if err != nil {
		return 0, err
	}

	dir := m.settings.WaveformDir()
	if err := ioutils.EnsureDir(dir); err != nil {
		return 0, err
	}

	renderer := ioutils.NewWaveformRenderer(m.settings.WaveformWidth, m.settings.WaveformHeight)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.WaveformMaxConcurrent)

	var exported int32
	for _, row := range table.Rows {
		row := row // capture
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := renderer.RenderPNG(row.Samples)
			if err != nil {
				m.progress(ProgressEvent{
					Message: fmt.Sprintf("Error rendering %s: %v", row.Meta.FileStem(), err),
					Level:   LevelWarning,
				})
				return nil // Continue with other recordings
			}

			target := filepath.Join(dir, row.Meta.FileStem()+".png")
			if err := os.WriteFile(target, data, 0644); err != nil {
				return err
			}

			atomic.AddInt32(&exported, 1)
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Exported %s", filepath.Base(target)),
				Level:   LevelVerbose,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(atomic.LoadInt32(&exported)), err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Exported %d waveform previews to %s", exported, dir),
		Level:   LevelSuccess,
	})

	return int(exported), nil
}
