package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string

	MySQLUser     string
	MySQLPassword string
	MySQLHost     string
	MySQLPort     string
	MySQLDatabase string

	RedisAddr string

	AMQPURL      string
	AMQPExchange string

	MailAPIURL string
	MailAPIKey string
	MailFrom   string

	SMSGatewayURL string
	SMSAPIKey     string
	SMSSenderID   string

	// AdminKey is the shared secret for admin routes. Empty means every admin
	// request is rejected.
	AdminKey string

	StoreName string
	PublicDir string
	UploadDir string

	NotifyTimeout time.Duration
	MaxUploadSize int64
}

// Load reads configuration from SHOP_-prefixed environment variables with
// sensible development defaults for everything except secrets.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("SHOP")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("mysql_user", "root")
	v.SetDefault("mysql_password", "")
	v.SetDefault("mysql_host", "127.0.0.1")
	v.SetDefault("mysql_port", "3306")
	v.SetDefault("mysql_database", "perfume_shop")
	v.SetDefault("redis_addr", "")
	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "shop.events")
	v.SetDefault("mail_api_url", "")
	v.SetDefault("mail_api_key", "")
	v.SetDefault("mail_from", "orders@perfume-shop.example")
	v.SetDefault("sms_gateway_url", "")
	v.SetDefault("sms_api_key", "")
	v.SetDefault("sms_sender_id", "PerfumeShop")
	v.SetDefault("admin_key", "")
	v.SetDefault("store_name", "House of Musk")
	v.SetDefault("public_dir", "./public")
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("notify_timeout", "10s")
	v.SetDefault("max_upload_size", 5<<20)

	return &Config{
		Port:          v.GetString("port"),
		MySQLUser:     v.GetString("mysql_user"),
		MySQLPassword: v.GetString("mysql_password"),
		MySQLHost:     v.GetString("mysql_host"),
		MySQLPort:     v.GetString("mysql_port"),
		MySQLDatabase: v.GetString("mysql_database"),
		RedisAddr:     v.GetString("redis_addr"),
		AMQPURL:       v.GetString("amqp_url"),
		AMQPExchange:  v.GetString("amqp_exchange"),
		MailAPIURL:    v.GetString("mail_api_url"),
		MailAPIKey:    v.GetString("mail_api_key"),
		MailFrom:      v.GetString("mail_from"),
		SMSGatewayURL: v.GetString("sms_gateway_url"),
		SMSAPIKey:     v.GetString("sms_api_key"),
		SMSSenderID:   v.GetString("sms_sender_id"),
		AdminKey:      v.GetString("admin_key"),
		StoreName:     v.GetString("store_name"),
		PublicDir:     v.GetString("public_dir"),
		UploadDir:     v.GetString("upload_dir"),
		NotifyTimeout: v.GetDuration("notify_timeout"),
		MaxUploadSize: v.GetInt64("max_upload_size"),
	}
}

// DSN builds the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.MySQLUser, c.MySQLPassword, c.MySQLHost, c.MySQLPort, c.MySQLDatabase)
}
