package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"foodgram/internal/adapter/api"
	"foodgram/internal/adapter/api/handler"
	apimiddleware "foodgram/internal/adapter/api/middleware"
	"foodgram/internal/adapter/api/router"
	"foodgram/internal/adapter/repository"
	"foodgram/internal/domain/service"
	"foodgram/internal/infrastructure/firebase"
	"foodgram/internal/infrastructure/ratelimit"
	"foodgram/internal/infrastructure/storage"
	"foodgram/internal/usecase"
	"foodgram/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account from the environment in production, from a file locally
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	serviceAccountPath := ""
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON == "" {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
	}

	storageClient, err := storage.NewCloudStorageClient(
		ctx,
		cfg.StorageBucket,
		cfg.FirebaseProject,
		serviceAccountPath,
	)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	subscriptionRepo := repository.NewFirestoreSubscriptionRepository(firestoreClient)
	tagRepo := repository.NewFirestoreTagRepository(firestoreClient)
	ingredientRepo := repository.NewFirestoreIngredientRepository(firestoreClient)
	recipeRepo := repository.NewFirestoreRecipeRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	cartRepo := repository.NewFirestoreCartRepository(firestoreClient)
	shortLinkRepo := repository.NewFirestoreShortLinkRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	imageService := service.NewImageService(storageClient)

	handler.SetupHealthHandler(firebaseAuthClient)
	handler.SetupDevTokenHandler(firebaseAuthClient, userRepo)

	actionLimiter := ratelimit.NewRateLimiter()
	actionLimiter.StartCleanupRoutine()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient, actionLimiter)
	userUseCase := usecase.NewUserUseCase(userRepo, subscriptionRepo, firebaseAuthClient, imageService)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, userRepo, recipeRepo)
	catalogUseCase := usecase.NewCatalogUseCase(tagRepo, ingredientRepo)
	recipeUseCase := usecase.NewRecipeUseCase(recipeRepo, tagRepo, ingredientRepo, userRepo, subscriptionRepo, favoriteRepo, cartRepo, imageService, actionLimiter)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, recipeRepo)
	cartUseCase := usecase.NewCartUseCase(cartRepo, recipeRepo, ingredientRepo)
	shortLinkUseCase := usecase.NewShortLinkUseCase(shortLinkRepo, recipeRepo)

	handler.Setup(
		cfg,
		authUseCase,
		userUseCase,
		subscriptionUseCase,
		catalogUseCase,
		recipeUseCase,
		favoriteUseCase,
		cartUseCase,
		shortLinkUseCase,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.GeneralRateLimit())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, authMiddleware, adminMiddleware, authClient)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
