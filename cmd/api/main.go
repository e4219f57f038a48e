package main

import (
	"context"
	"log"
	"os"

	"warehouse/internal/config"
	"warehouse/internal/domain/model"
	"warehouse/internal/handler"
	"warehouse/internal/infra/db"
	infraRepo "warehouse/internal/infra/repository"
	"warehouse/internal/repository"
	"warehouse/internal/server"
	"warehouse/internal/usecase"
	"warehouse/internal/validator"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	//.envは任意（なければ環境変数だけで動く）
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Category{},
		&model.Product{},
		&model.Operation{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	operationRepo := infraRepo.NewOperationGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//初回起動時のユーザーシード
	if err := seedUsers(context.Background(), userRepo); err != nil {
		log.Fatalf("seed: %v", err)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, validator.NewAuthValidator())
	stockUC := usecase.NewStockUsecase(txManager)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, operationRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, productRepo)
	reportUC := usecase.NewReportUsecase(productRepo, operationRepo)

	//Handler生成
	h := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		Products:   handler.NewProductHandler(productUC),
		Categories: handler.NewCategoryHandler(categoryUC),
		Operations: handler.NewOperationHandler(stockUC, reportUC),
		Reports:    handler.NewReportHandler(reportUC),
	}

	//Server起動
	addr := ":" + cfg.Port

	if err := server.Start(addr, cfg, userRepo, h); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// ユーザーが1人もいなければ管理者と作業者を作る。
// パスワードは環境変数から取り、必ずbcryptハッシュで保存する。
func seedUsers(ctx context.Context, users repository.UserRepository) error {
	n, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	seeds := []struct {
		loginEnv    string
		passwordEnv string
		defLogin    string
		role        model.Role
	}{
		{"SEED_ADMIN_LOGIN", "SEED_ADMIN_PASSWORD", "admin", model.RoleAdmin},
		{"SEED_OPERATOR_LOGIN", "SEED_OPERATOR_PASSWORD", "operator", model.RoleOperator},
	}

	for _, s := range seeds {
		login := os.Getenv(s.loginEnv)
		if login == "" {
			login = s.defLogin
		}
		password := os.Getenv(s.passwordEnv)
		if password == "" {
			log.Printf("seed: %s not set, skipping user %s", s.passwordEnv, login)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		if err := users.Create(ctx, &model.User{
			Login:        login,
			PasswordHash: string(hash),
			Role:         s.role,
			IsActive:     true,
		}); err != nil {
			return err
		}

		log.Printf("seed: created user %s (%s)", login, s.role)
	}

	return nil
}
