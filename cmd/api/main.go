package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"app/internal/alert"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/feed"
	"app/internal/gateway"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// logReceiptPrinter는 프린터 연동 전의 기본 구현.
// TODO: ESC/POS 프린터 연동이 붙으면 교체
type logReceiptPrinter struct{}

func (p *logReceiptPrinter) Print(ctx context.Context, order model.Order) error {
	log.Printf("영수증 출력 order=%s (%d원)", order.ID, order.TotalPrice)
	return nil
}

// beepSound는 터미널 벨. 서버 환경에선 소리가 안 날 수 있지만 best-effort.
type beepSound struct{}

func (s *beepSound) Play() error {
	_, err := os.Stdout.Write([]byte("\a"))
	return err
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env 없음, 환경변수만 사용: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("DB 접속 실패: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	database := client.Database(cfg.MongoDB)

	// Repository 생성
	orderRepo := infraRepo.NewOrderMongoRepository(database)
	couponRepo := infraRepo.NewCouponMongoRepository(database)
	menuRepo := infraRepo.NewMenuMongoRepository(database)
	eventRepo := infraRepo.NewEventMongoRepository(database)
	reviewRepo := infraRepo.NewReviewMongoRepository(database)
	storeRepo := infraRepo.NewStoreMongoRepository(database)
	txManager := infraRepo.NewMongoTransactionManager(client, orderRepo, reviewRepo)

	orderFeed := infraRepo.NewChangeStreamSource[model.Order](database)

	// 상점 설정은 문서 feed로 따라간다. 웹훅이 항상 최신 shopId를 대조하게 된다.
	storeFeed := infraRepo.NewChangeStreamSource[model.Store](database)
	liveStores := infraRepo.NewStoreFeedRepository(storeFeed, storeRepo, cfg.StoreID)

	// Usecase에 넘길 부품
	clock := &realClock{}
	printer := &logReceiptPrinter{}
	nicepay := gateway.NewNicepayClient(cfg.NicepayAPIURL, cfg.NicepayClientID, cfg.NicepaySecretKey)

	// Usecase 생성
	orderUC := usecase.NewOrderUsecase(orderRepo, printer)
	couponUC := usecase.NewCouponUsecase(couponRepo, clock)
	menuUC := usecase.NewMenuUsecase(menuRepo)
	eventUC := usecase.NewEventUsecase(eventRepo, clock)
	reviewUC := usecase.NewReviewUsecase(txManager, reviewRepo, clock)
	paymentUC := usecase.NewPaymentUsecase(orderRepo, nicepay, clock)
	deliveryUC := usecase.NewDeliveryUsecase(orderRepo, liveStores)

	// Handler 생성
	handlers := server.Handlers{
		Order:           handler.NewOrderHandler(orderUC, cfg.StoreID),
		AdminOrder:      handler.NewAdminOrderHandler(orderUC, orderFeed, cfg.StoreID),
		Coupon:          handler.NewCouponHandler(couponUC, cfg.StoreID),
		Menu:            handler.NewMenuHandler(menuUC, cfg.StoreID),
		Event:           handler.NewEventHandler(eventUC, cfg.StoreID),
		Review:          handler.NewReviewHandler(reviewUC, cfg.StoreID),
		PaymentWebhook:  handler.NewPaymentWebhookHandler(paymentUC),
		DeliveryWebhook: handler.NewDeliveryWebhookHandler(deliveryUC, cfg.StoreID),
	}

	// 새 주문 알림: 전체 주문 피드를 백그라운드에서 관찰
	watcher := alert.NewWatcher(&alert.LogNotifier{Sound: &beepSound{}})
	alertFeed := feed.NewCollection[model.Order](orderFeed)
	q := usecase.AllOrdersQuery(cfg.StoreID)
	alertFeed.SetQuery(&q)
	go func() {
		for snap := range alertFeed.Updates() {
			if snap.Err != nil {
				log.Printf("주문 알림 피드 에러: %v", snap.Err)
				return
			}
			watcher.Observe(snap.Data)
		}
	}()

	srv := server.New(cfg, handlers)

	go func() {
		addr := cfg.Port
		if addr[0] != ':' {
			addr = ":" + addr
		}
		if err := srv.Start(addr); err != nil {
			log.Printf("서버 종료: %v", err)
		}
	}()

	// SIGINT/SIGTERM으로 graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	alertFeed.Close()
	liveStores.Close()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown 실패: %v", err)
	}
}
