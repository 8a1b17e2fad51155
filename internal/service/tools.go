package service

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
)

func validateJob(job model.ResizeJob) error {
	name := strings.TrimSpace(job.Filename)
	if name == "" {
		return fmt.Errorf("%w: empty filename", model.ErrIncorrectJob)
	}

	// задачи работают только с файлами внутри базовой директории
	if filepath.Base(name) != name || name == "." || name == ".." {
		return fmt.Errorf("%w: %q must be a plain file name", model.ErrIncorrectJob, job.Filename)
	}

	if job.TargetSize <= 0 {
		return fmt.Errorf("%w: %q has size %d", model.ErrIncorrectSize, job.Filename, job.TargetSize)
	}
	return nil
}

func validateImgFormat(r io.ReadCloser) (io.Reader, image.Config, error) {
	if r == nil {
		return nil, image.Config{}, fmt.Errorf("%w: nil-reader provided", model.ErrDecode)
	}
	defer closeFileFlow(r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, image.Config{}, fmt.Errorf("%w: %w", model.ErrIO, err)
	}

	cfg, f, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, image.Config{}, fmt.Errorf("%w: %w", model.ErrUnsupportedFormat, err)
	}

	if !model.InImageFormats[f] {
		return nil, image.Config{}, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, f)
	}

	return bytes.NewReader(data), cfg, nil
}

func closeFileFlow(res io.ReadCloser) {
	if res == nil {
		return
	}

	if err := res.Close(); err != nil {
		log.Println("Service failed to close fileflow:", err)
	}
}
