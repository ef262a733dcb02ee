package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/douhashi/issuepipe/internal/appeal"
	"github.com/douhashi/issuepipe/internal/paths"
)

// ArchiveResult はArchiverの実行結果
type ArchiveResult struct {
	AppealsDir    string
	AcceptedFound bool
	Converted     []int
	Failed        []string
	Skipped       []string
	Removed       []string
}

// Archiver は受理されたIssueをアピール文書に変換し、ステージングディレクトリを削除する
type Archiver struct {
	fs     afero.Fs
	layout paths.Layout
	opts   options
}

// NewArchiver は新しいArchiverを作成する
func NewArchiver(fs afero.Fs, layout paths.Layout, opts ...Option) (*Archiver, error) {
	if fs == nil {
		return nil, errors.New("filesystem is required")
	}
	return &Archiver{fs: fs, layout: layout, opts: applyOptions(opts)}, nil
}

// Run は変換とクリーンアップを行う
// accepted ディレクトリが無い場合でもクリーンアップは必ず実行する
func (a *Archiver) Run(ctx context.Context) (*ArchiveResult, error) {
	result := &ArchiveResult{AppealsDir: a.layout.AppealsDir}

	if err := a.convert(ctx, result); err != nil {
		return result, err
	}

	removed, err := a.cleanup()
	result.Removed = removed
	if err != nil {
		return result, err
	}
	return result, nil
}

func (a *Archiver) convert(ctx context.Context, result *ArchiveResult) error {
	log := a.opts.logger

	files, exists, err := listJSONFiles(a.fs, a.layout.AcceptedDir)
	if err != nil {
		return err
	}
	if !exists {
		log.Info("Accepted folder not found, nothing to convert", "dir", a.layout.AcceptedDir)
		return nil
	}
	result.AcceptedFound = true

	if err := a.fs.MkdirAll(a.layout.AppealsDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create appeals directory: %w", err)
	}

	if len(files) == 0 {
		log.Info("No accepted issues to convert")
		return nil
	}
	log.Info("Converting accepted issues", "count", len(files))

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		number, ok := paths.ParseIssueFileName(name)
		if !ok {
			log.Warn("Skipping file: cannot determine issue number", "file", name)
			result.Skipped = append(result.Skipped, name)
			continue
		}

		if err := a.convertOne(filepath.Join(a.layout.AcceptedDir, name), number); err != nil {
			log.Error("Failed to convert issue", "file", name, "error", err.Error())
			result.Failed = append(result.Failed, name)
			continue
		}
		log.Info("Created appeal", "file", paths.AppealFileName(number))
		result.Converted = append(result.Converted, number)
	}

	return nil
}

func (a *Archiver) convertOne(path string, number int) error {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}

	src, err := appeal.Decode(data)
	if err != nil {
		return err
	}

	doc := appeal.Render(src, a.opts.untitled)
	if err := afero.WriteFile(a.fs, a.layout.AppealFile(number), []byte(doc), filePerm); err != nil {
		return fmt.Errorf("failed to write appeal: %w", err)
	}
	return nil
}

// cleanup はステージングディレクトリを中身ごと削除する
func (a *Archiver) cleanup() ([]string, error) {
	log := a.opts.logger
	var removed []string

	for _, dir := range a.layout.StagingDirs() {
		exists, err := afero.DirExists(a.fs, dir)
		if err != nil {
			return removed, fmt.Errorf("failed to check %s: %w", dir, err)
		}
		if !exists {
			continue
		}
		if err := a.fs.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		log.Info("Removed folder", "dir", dir)
		removed = append(removed, dir)
	}

	return removed, nil
}
