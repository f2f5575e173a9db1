// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/kamaubrian/customerhub-backend/internal/cache"
	"github.com/kamaubrian/customerhub-backend/internal/controller"
	"github.com/kamaubrian/customerhub-backend/internal/db"
	"github.com/kamaubrian/customerhub-backend/internal/handler"
	"github.com/kamaubrian/customerhub-backend/internal/queue"
	"github.com/kamaubrian/customerhub-backend/internal/repository"
	"github.com/kamaubrian/customerhub-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()
	q := queue.NewInMemoryQueue()

	customerRepo := &repository.CustomerRepository{DB: db.DB}
	notificationRepo := &repository.NotificationRepository{DB: db.DB}
	// TODO: Replace MockSender with actual email sending logic
	queue.StartWelcomeSendSubscriber(q, notificationRepo, queue.MockSender)

	// Optional Redis cache, enabled when REDIS_ADDR is set
	var customerCache *cache.CustomerCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		customerCache = cache.NewCustomerCache(client)
		log.Println("✅ Customer cache enabled at", addr)
	}

	customerService := &service.CustomerService{
		CustomerRepo:     customerRepo,
		NotificationRepo: notificationRepo,
		Queue:            q,
		Cache:            customerCache,
	}

	importService := &service.ImportService{
		CustomerRepo: customerRepo,
	}

	customerController := &controller.CustomerController{
		CustomerService: customerService,
		ImportService:   importService,
	}

	customerHandler := &handler.CustomerHandler{
		Repo:    customerRepo,
		Service: customerService,
	}

	r := chi.NewRouter()

	// Customer routes
	r.Post("/customers", customerController.CreateCustomer)
	r.Get("/customers", customerController.ListCustomers)
	r.Get("/customers/{id}", customerController.GetCustomer)
	r.Put("/customers/{id}", customerController.UpdateCustomer)
	r.Delete("/customers/{id}", customerController.DeleteCustomer)
	r.Post("/customers/import", customerController.ImportCustomers)
	r.Post("/customers/{id}/welcome-preview", customerController.WelcomePreview)
	r.Get("/customers/{id}/activity", customerHandler.GetCustomerHandlerWithActivity)

	log.Println("🚀 Server running on :8080")
	log.Fatal(http.ListenAndServe(":8080", r))
}
