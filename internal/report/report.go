// Package report renders a normalization run as human-readable progress lines
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
)

// Print writes the run report to w. Write errors are ignored: the output is informational only.
func Print(w io.Writer, r *model.Report) {
	if r == nil {
		return
	}

	fmt.Fprintf(w, "🎨 Normalizing favicons in %s (variant: %s, run: %s)\n", r.BaseDir, r.Variant, r.RunID)

	for _, res := range r.Results {
		switch res.Status {
		case model.StatusSkipped:
			fmt.Fprintf(w, "\n⚠️  %s not found, skipping...\n", res.Job.Filename)
		case model.StatusDone:
			fmt.Fprintf(w, "\n📸 Processing %s\n", res.Job.Filename)
			fmt.Fprintf(w, "   Original size: %dx%d\n", res.Before.X, res.Before.Y)
			switch {
			// только fill оставляет картинку нужного размера как есть
			case r.Variant == model.VariantFill && res.Before == res.After:
				fmt.Fprintf(w, "   Size already correct: %dx%d\n", res.After.X, res.After.Y)
			case r.Variant == model.VariantFill:
				fmt.Fprintf(w, "   Resized from %dx%d to %dx%d\n", res.Before.X, res.Before.Y, res.After.X, res.After.Y)
			default:
				fmt.Fprintf(w, "   Transformed (%s) from %dx%d to %dx%d\n", r.Variant, res.Before.X, res.Before.Y, res.After.X, res.After.Y)
			}
			fmt.Fprintf(w, "   ✅ Saved: %dx%d\n", res.After.X, res.After.Y)
		default:
			fmt.Fprintf(w, "\n📸 Processing %s\n", res.Job.Filename)
			fmt.Fprintf(w, "   ❌ Error processing %s: %v\n", res.Job.Filename, res.Err)
		}
	}

	fmt.Fprintf(w, "\n✨ Done! %d normalized, %d skipped, %d failed in %s.\n",
		r.Done(), r.Skipped(), r.Failed(), r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
}
