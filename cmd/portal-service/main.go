package main

import (
	"fmt"
	"os"

	"github.com/rezieresouza-rgb/portal-gestao/internal/auth"
	"github.com/rezieresouza-rgb/portal-gestao/internal/clock"
	"github.com/rezieresouza-rgb/portal-gestao/internal/config"
	"github.com/rezieresouza-rgb/portal-gestao/internal/db"
	"github.com/rezieresouza-rgb/portal-gestao/internal/excel"
	httphandler "github.com/rezieresouza-rgb/portal-gestao/internal/http"
	"github.com/rezieresouza-rgb/portal-gestao/internal/http/middleware"
	"github.com/rezieresouza-rgb/portal-gestao/internal/logger"
	"github.com/rezieresouza-rgb/portal-gestao/internal/pdf"
	"github.com/rezieresouza-rgb/portal-gestao/internal/repository"
	"github.com/rezieresouza-rgb/portal-gestao/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	contractRepo := repository.NewContractRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	attendanceRepo := repository.NewAttendanceRepository(database)
	mediationRepo := repository.NewMediationRepository(database)
	calendarRepo := repository.NewCalendarRepository(database)

	clk := clock.New()
	orderService := service.NewOrderService(contractRepo, orderRepo, pdf.NewGenerator(), clk, cfg)
	contractService := service.NewContractService(contractRepo, excel.NewGenerator(), clk)
	attendanceService := service.NewAttendanceService(attendanceRepo)
	mediationService := service.NewMediationService(mediationRepo, clk)
	calendarService := service.NewCalendarService(calendarRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(contractService, orderService, attendanceService, mediationService, calendarService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Bool("orders_locked", cfg.Orders.Locked).Msg("starting portal service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
