// Package service provides the favicon normalizer: a sequential best-effort pass over resize jobs
package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"time"

	"github.com/UnendingLoop/FaviconNormalizer/internal/imageproc"
	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/UnendingLoop/FaviconNormalizer/internal/runlogger"
)

// ImageStorage - контракт для работы с хранилищем
type ImageStorage interface {
	Stat(ctx context.Context, key string) (exists bool, err error)
	Get(ctx context.Context, key string) (output io.ReadCloser, ctype string, err error)
	Put(ctx context.Context, key string, size int64, contentType string, r io.Reader) error
}

type FaviconService struct {
	storage     ImageStorage
	variant     model.Variant
	compression string
}

func NewFaviconService(strg ImageStorage, variant model.Variant, compression string) *FaviconService {
	return &FaviconService{
		storage:     strg,
		variant:     variant,
		compression: compression,
	}
}

// Normalize processes jobs strictly in list order. A failed or skipped job never stops the
// pass; only a canceled context does, and then the remaining jobs are reported as failed.
func (c FaviconService) Normalize(ctx context.Context, jobs []model.ResizeJob, baseDir string) *model.Report {
	runID := runlogger.NewRunID()
	ctx = runlogger.WithRunLogger(ctx, runID, c.variant)
	logger := runlogger.LoggerFromContext(ctx)

	report := &model.Report{
		RunID:     runID,
		Variant:   c.variant,
		BaseDir:   baseDir,
		Results:   make([]model.JobResult, 0, len(jobs)),
		StartedAt: time.Now().UTC(),
	}

	if len(jobs) == 0 {
		logger.Warn().Msg("Empty job list provided, nothing to normalize")
	}

	for i, job := range jobs {
		// прерывание - оставшиеся задачи помечаем как проваленные и выходим
		if err := ctx.Err(); err != nil {
			for _, rest := range jobs[i:] {
				report.Results = append(report.Results, model.JobResult{Job: rest, Status: model.StatusFailed, Err: err})
			}
			logger.Warn().Err(err).Int("remaining", len(jobs)-i).Msg("Run interrupted")
			break
		}

		res := c.processJob(ctx, job, baseDir)
		logResult(ctx, res)
		report.Results = append(report.Results, res)
	}

	report.FinishedAt = time.Now().UTC()
	logger.Info().
		Int("done", report.Done()).
		Int("skipped", report.Skipped()).
		Int("failed", report.Failed()).
		Dur("took", report.FinishedAt.Sub(report.StartedAt)).
		Msg("Normalization finished")

	return report
}

func (c FaviconService) processJob(ctx context.Context, job model.ResizeJob, baseDir string) model.JobResult {
	res := model.JobResult{Job: job}

	if err := validateJob(job); err != nil {
		return failed(res, err)
	}

	path := filepath.Join(baseDir, job.Filename)

	// файла нет - пропускаем, это не ошибка
	exists, err := c.storage.Stat(ctx, path)
	if err != nil {
		return failed(res, fmt.Errorf("failed to stat %q: %w", path, err))
	}
	if !exists {
		res.Status = model.StatusSkipped
		res.Err = fmt.Errorf("%w: %q", model.ErrNotFound, path)
		return res
	}

	// достаем исходник
	src, ctype, err := c.storage.Get(ctx, path)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			res.Status = model.StatusSkipped
			res.Err = err
			return res
		}
		return failed(res, fmt.Errorf("failed to read %q: %w", path, err))
	}
	res.ContentType = ctype

	// валидируем формат и запоминаем исходные размеры
	pSrc, cfg, err := validateImgFormat(src)
	if err != nil {
		return failed(res, fmt.Errorf("failed to validate %q: %w", path, err))
	}
	res.Before = image.Pt(cfg.Width, cfg.Height)

	img, err := imageproc.Decode(pSrc)
	if err != nil {
		return failed(res, err)
	}

	out, err := imageproc.Transform(img, c.variant, job.TargetSize)
	if err != nil {
		return failed(res, err)
	}

	// сначала кодируем в буфер, и только потом перезаписываем файл
	format := job.Format()
	result, size, err := imageproc.Encode(out, format, c.compression)
	if err != nil {
		return failed(res, err)
	}

	if err := c.storage.Put(ctx, path, size, model.GetCType[format], result); err != nil {
		return failed(res, fmt.Errorf("failed to write %q: %w", path, err))
	}

	res.Status = model.StatusDone
	res.After = out.Bounds().Size()
	return res
}

func failed(res model.JobResult, err error) model.JobResult {
	res.Status = model.StatusFailed
	res.Err = err
	return res
}

func logResult(ctx context.Context, res model.JobResult) {
	logger := runlogger.LoggerFromContext(ctx)

	switch res.Status {
	case model.StatusDone:
		logger.Info().
			Str("file", res.Job.Filename).
			Str("content_type", res.ContentType).
			Str("before", fmt.Sprintf("%dx%d", res.Before.X, res.Before.Y)).
			Str("after", fmt.Sprintf("%dx%d", res.After.X, res.After.Y)).
			Msg("Favicon normalized")
	case model.StatusSkipped:
		logger.Warn().Str("file", res.Job.Filename).Msg("Favicon not found, skipping")
	default:
		logger.Error().Err(res.Err).Str("file", res.Job.Filename).Str("content_type", res.ContentType).Msg("Failed to normalize favicon")
	}
}
