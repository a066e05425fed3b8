package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"alumnihub/internal/adapter/api"
	"alumnihub/internal/adapter/api/handler"
	apimiddleware "alumnihub/internal/adapter/api/middleware"
	"alumnihub/internal/adapter/api/router"
	"alumnihub/internal/adapter/repository"
	"alumnihub/internal/infrastructure/firebase"
	"alumnihub/internal/infrastructure/websocket"
	"alumnihub/internal/usecase"
	"alumnihub/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	fbAuthClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	chatRequestRepo := repository.NewFirestoreChatRequestRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	jobRepo := repository.NewFirestoreJobRepository(firestoreClient)
	eventRepo := repository.NewFirestoreEventRepository(firestoreClient)

	authClient := firebase.NewAuthClient(fbAuthClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, wsManager)
	chatUseCase := usecase.NewChatUseCase(chatRequestRepo, conversationRepo, messageRepo, userRepo, notificationUseCase)
	postingUseCase := usecase.NewPostingUseCase(jobRepo, eventRepo, userRepo, notificationUseCase)

	gateway := websocket.NewGateway(wsManager, chatUseCase)

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: strings.Split(cfg.AllowedOrigins, ","),
	}))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient, userRepo)

	chatHandler := handler.NewChatHandler(chatUseCase)
	notificationHandler := handler.NewNotificationHandler(notificationUseCase)
	postingHandler := handler.NewPostingHandler(postingUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager, gateway, authClient, userRepo)

	router.Setup(e)
	router.SetupChatRouter(e, chatHandler, authMiddleware)
	router.SetupNotificationRouter(e, notificationHandler, authMiddleware)
	router.SetupPostingRouter(e, postingHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
