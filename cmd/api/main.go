package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/app"
	"taskboard/internal/config"

	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "путь к файлу конфигурации (по умолчанию ./config.yml, если есть)")
	showVersion := pflag.BoolP("version", "v", false, "показать версию и выйти")
	pflag.Parse()

	if *showVersion {
		fmt.Println("taskboard", app.Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка конфигурации:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg).Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка приложения:", err)
		os.Exit(1)
	}
}
