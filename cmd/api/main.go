package main

import (
	"context"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/mailer"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/storage"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	e := server.New(cfg)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		e.Logger.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		e.Logger.Fatalf("migrate: %v", err)
	}

	//Redis（パスワード再設定トークン）
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := cache.NewRedisClient(pingCtx, cfg)
	cancel()
	if err != nil {
		e.Logger.Fatalf("redis: %v", err)
	}
	defer rdb.Close()
	resetTokens := cache.NewResetTokenStore(rdb, cfg.ResetTokenTTL)

	//MinIO（画像URL）
	media, err := storage.NewMediaStorage(cfg)
	if err != nil {
		e.Logger.Fatalf("media storage: %v", err)
	}

	//SMTP未設定ならログに出すだけ
	var mail usecase.Mailer = mailer.LogMailer{Logger: e.Logger}
	if cfg.SMTPHost != "" {
		m, err := mailer.NewSMTPMailer(cfg)
		if err != nil {
			e.Logger.Fatalf("mailer: %v", err)
		}
		mail = m
	} else {
		e.Logger.Warn("SMTP_HOST is empty; mails are only logged")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	carouselRepo := infraRepo.NewCarouselGormRepository(gormDB)
	subscribeRepo := infraRepo.NewSubscribeGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, resetTokens, mail)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo, auditRepo, media)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, addressRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, orderRepo, addressRepo, productRepo, auditRepo)
	marketingUC := usecase.NewMarketingUsecase(carouselRepo, subscribeRepo, media)
	contactUC := usecase.NewContactUsecase(cfg, mail)

	//Handler生成・ルート登録
	server.RegisterRoutes(e, cfg, userRepo, server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Address:      handler.NewAddressHandler(addressUC),
		Catalog:      handler.NewCatalogHandler(catalogUC),
		AdminCatalog: handler.NewAdminCatalogHandler(catalogUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:    handler.NewAdminUserHandler(authUC),
		Marketing:    handler.NewMarketingHandler(marketingUC),
		Contact:      handler.NewContactHandler(contactUC),
	})

	//Server起動
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		e.Logger.Fatal(err)
	}
}
