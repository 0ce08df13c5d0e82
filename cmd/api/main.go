package main

import (
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logging"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	log := logging.New()

	//.envが無い環境（本番）では環境変数をそのまま使う
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	menuUC := usecase.NewMenuUsecase(menuRepo, categoryRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	analyticsUC := usecase.NewAnalyticsUsecase(txManager)

	//Handler生成
	h := server.Handlers{
		Category:  handler.NewCategoryHandler(categoryUC),
		Menu:      handler.NewMenuHandler(menuUC),
		Order:     handler.NewOrderHandler(orderUC),
		Analytics: handler.NewAnalyticsHandler(analyticsUC),
	}

	//Server起動
	addr := ":" + cfg.Port
	log.Info("starting server", "addr", addr, "env", cfg.GoEnv)
	if err := server.Start(addr, cfg, log, h); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
