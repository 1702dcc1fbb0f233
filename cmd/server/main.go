package main

import (
	"context"
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/fundops/backoffice/config"
	"github.com/fundops/backoffice/internal/eventbus"
	"github.com/fundops/backoffice/internal/handler"
	"github.com/fundops/backoffice/internal/pkg/blob"
	"github.com/fundops/backoffice/internal/pkg/database"
	"github.com/fundops/backoffice/internal/repository"
	"github.com/fundops/backoffice/internal/router"
	"github.com/fundops/backoffice/internal/service"
	"github.com/fundops/backoffice/internal/service/composer"
	"github.com/fundops/backoffice/internal/subscriber"
)

func main() {
	// klog 초기화
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("서버 시작 중...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 데이터베이스 초기화
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 산출물 저장소 초기화
	blobStore, err := blob.NewFSStore(cfg.Data.DocumentDir)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// Repository 초기화
	fundRepo := repository.NewFundRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	docRepo := repository.NewDocumentRepository(db)

	// 이벤트 버스와 구독자
	docBus := eventbus.NewDocumentEventBus()
	subscriber.NewDocumentEventSubscriber(nil).Register(docBus)

	// Service 초기화
	composerSvc := composer.New(cfg)
	fundService := service.NewFundService(fundRepo)
	templateService := service.NewTemplateService(templateRepo)
	documentService := service.NewDocumentService(templateService, fundRepo, docRepo, blobStore, composerSvc, docBus)

	// 기동 시 활성 버전 정합성 점검
	reconcileActiveTemplates(templateService)

	// Handler 초기화
	fundHandler := handler.NewFundHandler(fundService)
	templateHandler := handler.NewTemplateHandler(templateService)
	docHandler := handler.NewDocumentHandler(documentService)

	// 라우터 설정
	r := router.Setup(cfg, fundHandler, templateHandler, docHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// reconcileActiveTemplates 활성 전환 중 장애로 생긴 정합성 위반을 기동 시 보고한다
func reconcileActiveTemplates(templateService service.TemplateService) {
	violations, err := templateService.ReconcileActive(context.Background())
	if err != nil {
		klog.V(6).Infof("활성 버전 정합성 점검 실패: %v", err)
		return
	}
	if len(violations) > 0 {
		klog.Errorf("활성 버전 정합성 위반 %d건: 수동 활성 전환으로 해소 필요", len(violations))
	}
}
