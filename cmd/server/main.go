package main

import (
	"log"
	"os"
	"time"

	httpctrl "shop-backend/internal/controllers/http"
	"shop-backend/internal/auth"
	mmysql "shop-backend/internal/infra/mysql"
	"shop-backend/internal/infra/payment"
	"shop-backend/internal/infra/rabbitmq"
	mysqlrepo "shop-backend/internal/repository/mysql"
	"shop-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const tokenTTL = time.Hour

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	userRepo := mysqlrepo.NewUserRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "shop.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	tokens := auth.NewTokenManager(jwtSecret, tokenTTL)

	gateway := payment.NewStripeGateway(
		os.Getenv("STRIPE_SECRET_KEY"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
		os.Getenv("CLIENT_URL"),
	)

	authSvc := services.NewAuthService(userRepo)
	productSvc := services.NewProductService(productRepo)
	cartSvc := services.NewCartService(cartRepo, productRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo, publisher)
	paymentSvc := services.NewPaymentService(gateway, orderSvc, cartSvc)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	productSvc.SetRedisClient(redisClient)

	isProd := os.Getenv("APP_ENV") == "production"

	handler := httpctrl.NewHandler(authSvc, productSvc, cartSvc, orderSvc, paymentSvc, tokens, redisClient, isProd)

	if isProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting shop backend on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
