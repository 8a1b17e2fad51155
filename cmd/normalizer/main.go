// Package main provides launch of the favicon normalizer: one sequential pass over the configured jobs
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnendingLoop/FaviconNormalizer/internal/appconfig"
	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/UnendingLoop/FaviconNormalizer/internal/report"
	"github.com/UnendingLoop/FaviconNormalizer/internal/service"
	"github.com/UnendingLoop/FaviconNormalizer/internal/storage"
	"github.com/UnendingLoop/FaviconNormalizer/internal/storage/filestorage"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	// инициализировать конфиг/ считать энвы
	appConfig := config.New()
	appConfig.EnableEnv("")
	envFile := appconfig.EnvFile(appConfig)
	if _, err := os.Stat(envFile); err == nil {
		if err := appConfig.LoadEnvFiles(envFile); err != nil {
			log.Printf("Failed to load envs from %q: %s", envFile, err)
		}
	}
	runCfg, level, cfgErr := appconfig.Load(appConfig)

	// стартуем логгер
	zlog.InitConsole()
	if err := zlog.SetLevel(level); err != nil {
		log.Printf("Failed to set log level %q: %v", level, err)
	}

	// Ctrl+C прерывает прогон между файлами
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run(ctx, os.Stdout, runCfg, cfgErr)
	// код выхода всегда 0 - ошибки по файлам уже в отчете
}

func run(ctx context.Context, out io.Writer, runCfg *model.RunConfig, cfgErr error) *model.Report {
	if cfgErr != nil {
		zlog.Logger.Error().Err(cfgErr).Msg("Invalid configuration, nothing will be normalized")
		r := &model.Report{Variant: runCfg.Variant, BaseDir: runCfg.BaseDir}
		report.Print(out, r)
		return r
	}

	// подключиться к хранилищу; без директории каждая задача просто уйдет в skipped
	strg, err := storage.NewImgStorage(runCfg.BaseDir)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("Favicon directory is unusable")
		strg = filestorage.NewFileStorage(runCfg.BaseDir)
	}

	var svc FaviconNormalizer = service.NewFaviconService(strg, runCfg.Variant, runCfg.Compression)
	r := svc.Normalize(ctx, runCfg.Jobs, runCfg.BaseDir)
	report.Print(out, r)

	return r
}
