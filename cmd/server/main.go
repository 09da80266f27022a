package main

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"perfume-shop/internal/config"
	shophttp "perfume-shop/internal/controllers/http"
	"perfume-shop/internal/infra"
	"perfume-shop/internal/infra/mysql"
	"perfume-shop/internal/infra/rabbitmq"
	"perfume-shop/internal/notify"
	mysqlrepo "perfume-shop/internal/repository/mysql"
	"perfume-shop/internal/services"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()
	if cfg.AdminKey == "" {
		log.Warn("SHOP_ADMIN_KEY is not set; all admin routes will reject requests")
	}

	db, err := mysql.NewMySQL(cfg)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}

	orderRepo := mysqlrepo.NewOrderRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)

	orderSvc := services.NewOrderService(orderRepo, log)
	catalogSvc := services.NewCatalogService(productRepo, log)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		catalogSvc.SetRedisClient(rdb)
	}

	if cfg.AMQPURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal("event publisher init failed", zap.Error(err))
		}
		defer publisher.Close()
		orderSvc.SetPublisher(publisher)
	}

	mail := infra.NewMailClient(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom, cfg.NotifyTimeout)
	sms := infra.NewSMSClient(cfg.SMSGatewayURL, cfg.SMSAPIKey, cfg.SMSSenderID, cfg.NotifyTimeout)
	dispatcher := notify.NewDispatcher(mail, sms, cfg.StoreName, cfg.NotifyTimeout, log)

	handler := shophttp.NewHandler(orderSvc, catalogSvc, dispatcher, shophttp.HandlerConfig{
		AdminKey:      cfg.AdminKey,
		UploadDir:     cfg.UploadDir,
		MaxUploadSize: cfg.MaxUploadSize,
	}, log)
	handler.SetStorePinger(productRepo)
	if rdb != nil {
		handler.SetRedisClient(rdb)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Static("/uploads", cfg.UploadDir)
	r.Static("/assets", cfg.PublicDir)
	r.StaticFile("/", cfg.PublicDir+"/index.html")

	handler.RegisterRoutes(r)

	log.Info("starting perfume-shop backend", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server run failed", zap.Error(err))
	}
}
