package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		raw     string
		want    Variant
		wantErr bool
	}{
		{"", VariantFill, false},
		{"fill", VariantFill, false},
		{"  SHRINK-and-center ", VariantShrinkAndCenter, false},
		{"grow-and-center-crop", VariantGrowAndCenterCrop, false},
		{"stretch", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := ParseVariant(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrIncorrectVariant)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestParseJobs(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []ResizeJob
		wantErr error
	}{
		{
			name: "OK list",
			raw:  "favicon-32x32.png:32, android-chrome-512x512.png:512",
			want: DefaultJobs(),
		},
		{
			name: "trailing comma",
			raw:  "a.png:16,",
			want: []ResizeJob{{Filename: "a.png", TargetSize: 16}},
		},
		{
			name: "colon inside name",
			raw:  "c:icon.png:24",
			want: []ResizeJob{{Filename: "c:icon.png", TargetSize: 24}},
		},
		{name: "empty", raw: "  ", wantErr: ErrIncorrectJob},
		{name: "only commas", raw: ",,", wantErr: ErrIncorrectJob},
		{name: "missing size", raw: "a.png", wantErr: ErrIncorrectJob},
		{name: "missing name", raw: ":32", wantErr: ErrIncorrectJob},
		{name: "dangling colon", raw: "a.png:", wantErr: ErrIncorrectJob},
		{name: "non-numeric size", raw: "a.png:big", wantErr: ErrIncorrectJob},
		{name: "zero size", raw: "a.png:0", wantErr: ErrIncorrectSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := ParseJobs(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, jobs)
		})
	}
}

func TestResizeJob_Format(t *testing.T) {
	require.Equal(t, FormatPNG, ResizeJob{Filename: "favicon-32x32.png"}.Format())
	require.Equal(t, FormatICO, ResizeJob{Filename: "favicon.ICO"}.Format())
	require.Equal(t, FormatPNG, ResizeJob{Filename: "noext"}.Format())
	require.Equal(t, "favicon.ico:48", ResizeJob{Filename: "favicon.ico", TargetSize: 48}.String())
}

func TestReport_Counters(t *testing.T) {
	r := &Report{Results: []JobResult{
		{Status: StatusDone},
		{Status: StatusDone},
		{Status: StatusSkipped, Err: ErrNotFound},
		{Status: StatusFailed, Err: errors.New("x")},
	}}

	require.Equal(t, 2, r.Done())
	require.Equal(t, 1, r.Skipped())
	require.Equal(t, 1, r.Failed())
}
