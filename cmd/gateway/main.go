package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"

	"github.com/shacklabs/house-gateway/internal/api"
	"github.com/shacklabs/house-gateway/internal/auth"
	"github.com/shacklabs/house-gateway/internal/config"
	"github.com/shacklabs/house-gateway/internal/contracts"
	"github.com/shacklabs/house-gateway/internal/eth"
	"github.com/shacklabs/house-gateway/internal/eventbus"
	"github.com/shacklabs/house-gateway/internal/logging"
	"github.com/shacklabs/house-gateway/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации")
	flag.Parse()

	// .env подхватывается до чтения конфигурации; отсутствие файла не ошибка
	_ = godotenv.Load()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("gateway"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🏠 Запуск House Gateway...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	if secret := config.JWTSecret(); secret != "" {
		if err := auth.SetJWTSecret(secret); err != nil {
			logging.Error("❌ Некорректный JWT_SECRET: %v", err)
			log.Fatalf("❌ Некорректный JWT_SECRET: %v", err)
		}
	} else {
		logging.Warn("JWT_SECRET не задан, используется случайный секрет (токены не переживут рестарт)")
	}

	// === ТЕЛЕМЕТРИЯ ===
	ctx := context.Background()
	var shutdownTelemetry func(context.Context) error
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err = observability.InitTelemetry(ctx, "house-gateway")
		if err != nil {
			logging.Warn("Телеметрия не инициализирована: %v", err)
			shutdownTelemetry = nil
		}
	}

	// === ХРАНИЛИЩЕ ПОЛЬЗОВАТЕЛЕЙ ===
	userRepo, closeRepo, err := buildUserRepo(cfg)
	if err != nil {
		logging.Error("❌ Ошибка подключения к хранилищу пользователей: %v", err)
		log.Fatalf("❌ Ошибка подключения к хранилищу пользователей: %v", err)
	}
	defer closeRepo()

	// === ОТЗЫВ ТОКЕНОВ ===
	var revoker auth.TokenRevoker
	if cfg.Redis.Addr != "" {
		redisRevoker, err := auth.NewRedisRevoker(cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			logging.Warn("Redis недоступен, отзыв токенов отключен: %v", err)
		} else {
			revoker = redisRevoker
			defer redisRevoker.Close()
			logging.Info("✅ Отзыв токенов через Redis: %s", cfg.Redis.Addr)
		}
	}

	// === ПОДКЛЮЧЕНИЕ К УЗЛУ ===
	operator, err := eth.NewOperator(config.OperatorKey())
	if err != nil {
		logging.Error("❌ Некорректный PRIVATE_KEY: %v", err)
		log.Fatalf("❌ Некорректный PRIVATE_KEY: %v", err)
	}

	rpcURL := cfg.Chain.GetRPCURL()
	node, err := ethclient.Dial(rpcURL)
	if err != nil {
		logging.Error("❌ Узел %s недоступен: %v", rpcURL, err)
		log.Fatalf("❌ Узел %s недоступен: %v", rpcURL, err)
	}
	defer node.Close()

	chainCtx, cancel := context.WithTimeout(ctx, cfg.Chain.GetCallTimeout())
	chainID, err := node.ChainID(chainCtx)
	cancel()
	if err != nil {
		logging.Error("❌ Не удалось получить chain id: %v", err)
		log.Fatalf("❌ Не удалось получить chain id: %v", err)
	}
	logging.Info("✅ Узел подключен: %s (chain id %s), оператор %s", rpcURL, chainID, operator.Address().Hex())

	client := eth.NewClient(node, eth.ClientConfig{
		Operator:    operator,
		ChainID:     chainID,
		GasLimit:    cfg.Chain.GetGasLimit(),
		CallTimeout: cfg.Chain.GetCallTimeout(),
	})

	set, err := contracts.NewSet(client, contracts.Addresses{
		Game:      cfg.Chain.GetGameAddress(),
		House:     cfg.Chain.GetHouseAddress(),
		Validator: cfg.Chain.GetValidatorAddress(),
		Setting:   cfg.Chain.GetSettingAddress(),
		Helper:    cfg.Chain.GetHelperAddress(),
	})
	if err != nil {
		logging.Error("❌ Ошибка привязки контрактов: %v", err)
		log.Fatalf("❌ Ошибка привязки контрактов: %v", err)
	}

	// === ШИНА СОБЫТИЙ ===
	var publisher eventbus.Publisher = eventbus.NoopPublisher{}
	if cfg.EventBus.URL != "" {
		natsPub, err := eventbus.NewNatsPublisher(cfg.EventBus.URL)
		if err != nil {
			logging.Warn("NATS недоступен, события действий не публикуются: %v", err)
		} else {
			publisher = natsPub
			logging.Info("✅ Публикация событий в NATS: %s", cfg.EventBus.URL)
		}
	}
	defer publisher.Close()

	// === REST СЕРВЕР ===
	port := fmt.Sprintf("%d", cfg.Server.GetPort())
	server := api.NewRestServer(api.RestServerConfig{
		Port:      port,
		UserRepo:  userRepo,
		Contracts: set,
		Revoker:   revoker,
		Publisher: publisher,
		Precision: cfg.Chain.GetPrecision(),
	})

	go func() {
		if err := server.Start(); err != nil {
			logging.Error("❌ Ошибка REST сервера: %v", err)
			log.Fatalf("❌ Ошибка REST сервера: %v", err)
		}
	}()

	logging.Info("✅ Шлюз запущен: http://localhost:%s", port)
	logging.Info("   ❤️  Health check: http://localhost:%s/health", port)

	// Ждем сигнала для завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST сервера: %v", err)
	}
	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logging.Error("Ошибка остановки телеметрии: %v", err)
		}
	}

	logging.Info("👋 Шлюз успешно остановлен")
}

// buildUserRepo выбирает хранилище пользователей по конфигурации.
// Mongo — основное, MariaDB — альтернатива для инсталляций без Mongo.
func buildUserRepo(cfg *config.Config) (auth.UserRepository, func(), error) {
	switch cfg.Database.Backend {
	case "mariadb":
		repo, err := auth.NewMariaUserRepo(auth.MariaConfig{
			Host:     cfg.Database.Maria.Host,
			Port:     cfg.Database.Maria.Port,
			Database: cfg.Database.Maria.Database,
			Username: cfg.Database.Maria.Username,
			Password: config.MariaPassword(),
		})
		if err != nil {
			return nil, nil, err
		}
		logging.Info("✅ Хранилище пользователей: MariaDB %s:%d", cfg.Database.Maria.Host, cfg.Database.Maria.Port)
		return repo, func() { _ = repo.Close() }, nil
	case "memory":
		// Для локальной разработки без БД
		logging.Warn("Хранилище пользователей в памяти: учетные записи не переживут рестарт")
		return auth.NewMemoryUserRepo(), func() {}, nil
	default:
		repo, err := auth.NewMongoUserRepo(auth.MongoConfig{
			URI:        cfg.Database.Mongo.URI,
			Database:   cfg.Database.Mongo.Database,
			Collection: cfg.Database.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		logging.Info("✅ Хранилище пользователей: MongoDB")
		return repo, func() { _ = repo.Close() }, nil
	}
}
