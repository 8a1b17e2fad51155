package main

import (
	"context"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
)

type FaviconNormalizer interface {
	Normalize(ctx context.Context, jobs []model.ResizeJob, baseDir string) *model.Report
}
