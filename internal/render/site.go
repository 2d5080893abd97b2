package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kovalyov-valentin/ad-updates-dashboard/internal/dashboard"
)

// Site собирает статическую версию дашборда: по странице на каждый вариант фильтра
type Site struct {
	renderer *Renderer
	basePath string
}

func NewSite(renderer *Renderer, basePath string) *Site {
	return &Site{renderer: renderer, basePath: basePath}
}

// Build пишет index.html, source/<slug>/index.html и updates.json в outDir.
// Возвращает список записанных файлов относительно outDir.
func (s *Site) Build(ctx context.Context, page dashboard.Page, outDir string) ([]string, error) {
	view := dashboard.NewView(page)
	linker := NewStaticLinker(s.basePath, page.Sources)

	// Страницы источников, которых больше нет в снапшоте, не должны попасть в деплой
	if err := os.RemoveAll(filepath.Join(outDir, sourcesDir)); err != nil {
		return nil, fmt.Errorf("clean %s: %w", sourcesDir, err)
	}

	var written []string

	for _, filter := range view.Filters() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		view.Select(filter)

		dir, _ := linker.Dir(filter)
		rel := filepath.Join(filepath.FromSlash(dir), "index.html")

		var buf bytes.Buffer
		if err := s.renderer.Render(&buf, view, linker); err != nil {
			return written, fmt.Errorf("render %s: %w", filter.Label(), err)
		}

		if err := writeFile(filepath.Join(outDir, rel), buf.Bytes()); err != nil {
			return written, err
		}

		written = append(written, filepath.ToSlash(rel))
	}

	data, err := json.MarshalIndent(page.Updates, "", "  ")
	if err != nil {
		return written, err
	}

	if err := writeFile(filepath.Join(outDir, "updates.json"), data); err != nil {
		return written, err
	}
	written = append(written, "updates.json")

	log.Printf("[INFO] built %d pages for %d updates into %s", len(written)-1, len(page.Updates), outDir)

	return written, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
