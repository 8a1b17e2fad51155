// Package model provides data-structs for internal app-usage
package model

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type (
	Variant      string
	JobStatus    string
	OutputFormat string
)

const (
	VariantFill              Variant = "fill"
	VariantShrinkAndCenter   Variant = "shrink-and-center"
	VariantGrowAndCenterCrop Variant = "grow-and-center-crop"
)

var VariantsMap = map[Variant]bool{
	VariantFill:              true,
	VariantShrinkAndCenter:   true,
	VariantGrowAndCenterCrop: true,
}

// Коэффициенты масштабирования обрезанного контента относительно целевого размера
const (
	ShrinkFactor = 0.5
	GrowFactor   = 1.1
)

const (
	StatusDone    JobStatus = "done"
	StatusSkipped JobStatus = "skipped"
	StatusFailed  JobStatus = "failed"
)

const (
	FormatPNG OutputFormat = "png"
	FormatICO OutputFormat = "ico"
)

// PNG compression presets
const (
	CompressionBest    = "best"
	CompressionDefault = "default"
	CompressionSpeed   = "speed"
	CompressionNone    = "none"
)

var CompressionMap = map[string]bool{
	CompressionBest:    true,
	CompressionDefault: true,
	CompressionSpeed:   true,
	CompressionNone:    true,
}

// InImageFormats - форматы исходников, которые умеем декодировать (имена из image.DecodeConfig)
var InImageFormats = map[string]bool{
	"png":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
	"webp": true,
	"ico":  true,
}

var GetCType = map[OutputFormat]string{
	FormatPNG: "image/png",
	FormatICO: "image/x-icon",
}

// ------------------

var (
	ErrNotFound          error = errors.New("file not found")
	ErrDecode            error = errors.New("failed to decode image")
	ErrEncode            error = errors.New("failed to encode image")
	ErrIO                error = errors.New("file i/o failure")
	ErrUnsupportedFormat error = errors.New("unsupported image format")
	ErrIncorrectVariant  error = errors.New("transform variant is not supported")
	ErrIncorrectJob      error = errors.New("incorrect resize job")
	ErrIncorrectSize     error = errors.New("target size must be positive")
	ErrEmptyBaseDir      error = errors.New("empty base directory provided")
)

//---------------------

// ResizeJob - пара "файл + целевой размер стороны"
type ResizeJob struct {
	Filename   string
	TargetSize int
}

func (j ResizeJob) String() string {
	return fmt.Sprintf("%s:%d", j.Filename, j.TargetSize)
}

// Format picks the output encoding from the job's file extension.
func (j ResizeJob) Format() OutputFormat {
	if strings.EqualFold(filepath.Ext(j.Filename), ".ico") {
		return FormatICO
	}
	return FormatPNG
}

// DefaultJobs returns the fixed favicon list processed when nothing else is configured.
func DefaultJobs() []ResizeJob {
	return []ResizeJob{
		{Filename: "favicon-32x32.png", TargetSize: 32},
		{Filename: "android-chrome-512x512.png", TargetSize: 512},
	}
}

// ParseJobs reads a "name:size,name:size" list.
func ParseJobs(raw string) ([]ResizeJob, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty job list", ErrIncorrectJob)
	}

	parts := strings.Split(raw, ",")
	jobs := make([]ResizeJob, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		idx := strings.LastIndex(p, ":")
		if idx <= 0 || idx == len(p)-1 {
			return nil, fmt.Errorf("%w: %q must look like name:size", ErrIncorrectJob, p)
		}
		size, err := strconv.Atoi(strings.TrimSpace(p[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("%w: %q has non-numeric size", ErrIncorrectJob, p)
		}
		if size <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectSize, p)
		}
		jobs = append(jobs, ResizeJob{Filename: strings.TrimSpace(p[:idx]), TargetSize: size})
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: empty job list", ErrIncorrectJob)
	}
	return jobs, nil
}

// ParseVariant - пустая строка означает fill
func ParseVariant(raw string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(raw)))
	if v == "" {
		return VariantFill, nil
	}
	if !VariantsMap[v] {
		return "", fmt.Errorf("%w: %q", ErrIncorrectVariant, raw)
	}
	return v, nil
}

//---------------------

// RunConfig - явная конфигурация прогона, передается в нормализатор при вызове
type RunConfig struct {
	BaseDir     string
	Variant     Variant
	Jobs        []ResizeJob
	Compression string
}

type JobResult struct {
	Job         ResizeJob
	Status      JobStatus
	ContentType string // как определило хранилище при чтении исходника
	Before      image.Point
	After       image.Point
	Err         error
}

type Report struct {
	RunID      string
	Variant    Variant
	BaseDir    string
	Results    []JobResult
	StartedAt  time.Time
	FinishedAt time.Time
}

func (r *Report) Done() int    { return r.count(StatusDone) }
func (r *Report) Skipped() int { return r.count(StatusSkipped) }
func (r *Report) Failed() int  { return r.count(StatusFailed) }

func (r *Report) count(st JobStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == st {
			n++
		}
	}
	return n
}
